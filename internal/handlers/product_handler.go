package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smarterpicks/backend/internal/services/catalog"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	svc *catalog.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ProductCreateRequest is the payload for creating a product
type ProductCreateRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     *string `json:"description"`
	ASIN            *string `json:"asin"`
	Price           float64 `json:"price" binding:"required"`
	ImageURL        string  `json:"image_url" binding:"required"`
	AffiliateURL    string  `json:"affiliate_url" binding:"required"`
	CustomerReviews float64 `json:"customerReviews"`
	BestSellersRank int     `json:"bestSellersRank"`
	RewardEligible  *bool   `json:"reward_eligible"`
}

// ProductUpdateRequest is the payload for a partial product update
type ProductUpdateRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	ASIN            *string  `json:"asin"`
	Price           *float64 `json:"price"`
	ImageURL        *string  `json:"image_url"`
	AffiliateURL    *string  `json:"affiliate_url"`
	CustomerReviews *float64 `json:"customerReviews"`
	BestSellersRank *int     `json:"bestSellersRank"`
	RewardEligible  *bool    `json:"reward_eligible"`
}

// List returns all products for the storefront
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a new product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	product, err := h.svc.Create(c.Request.Context(), catalog.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		ASIN:            req.ASIN,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		AffiliateURL:    req.AffiliateURL,
		CustomerReviews: req.CustomerReviews,
		BestSellersRank: req.BestSellersRank,
		RewardEligible:  req.RewardEligible,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Update applies a partial patch to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	product, err := h.svc.Update(c.Request.Context(), id, catalog.UpdatePatch{
		Title:           req.Title,
		Description:     req.Description,
		ASIN:            req.ASIN,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		AffiliateURL:    req.AffiliateURL,
		CustomerReviews: req.CustomerReviews,
		BestSellersRank: req.BestSellersRank,
		RewardEligible:  req.RewardEligible,
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, catalog.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrDuplicateProduct):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
