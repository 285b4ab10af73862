package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smarterpicks/backend/internal/services/identity"
)

// UserHandler handles user sync and profile requests
type UserHandler struct {
	svc *identity.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *identity.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserSyncRequest is the payload for syncing an identity-provider user
type UserSyncRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UserUpdateRequest is the payload for a partial user update
type UserUpdateRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PayoutEmail *string `json:"payout_email"`
}

// List returns all users (admin view)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get returns a single user by id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondIdentityError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Sync records a user from the identity provider
func (h *UserHandler) Sync(c *gin.Context) {
	var req UserSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	user, err := h.svc.Sync(c.Request.Context(), req.ID, req.Name, req.Email)
	if err != nil {
		respondIdentityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// Update applies a partial patch to a user
func (h *UserHandler) Update(c *gin.Context) {
	userID := c.Param("userId")

	// Users may only edit themselves unless they are an admin
	if !c.GetBool("is_admin") && userID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), userID, identity.UpdatePatch{
		Name:        req.Name,
		Email:       req.Email,
		PayoutEmail: req.PayoutEmail,
	})
	if err != nil {
		respondIdentityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func respondIdentityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, identity.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
