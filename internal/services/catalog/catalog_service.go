package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gosimple/slug"
	"github.com/smarterpicks/backend/internal/cache"
	"github.com/smarterpicks/backend/internal/models"
	"gorm.io/gorm"
)

// Cache key for the storefront product listing
const productListKey = "catalog:products"

const productListTTL = 10 * time.Minute

var (
	// ErrNotFound means the product id does not resolve
	ErrNotFound = errors.New("product not found")

	// ErrMissingField means a required product field is absent
	ErrMissingField = errors.New("missing required field")

	// ErrDuplicateProduct means a product with the same title already exists
	ErrDuplicateProduct = errors.New("product already exists")
)

// Service owns the product catalog: storefront listing (cached), admin CRUD
// and the field refresh applied by the Amazon sync job.
type Service struct {
	db    *gorm.DB
	cache *cache.Client
}

// NewService creates a new catalog service. cache may be nil.
func NewService(db *gorm.DB, cacheClient *cache.Client) *Service {
	return &Service{db: db, cache: cacheClient}
}

// CreateInput is the payload for creating a product
type CreateInput struct {
	Title           string
	Description     *string
	ASIN            *string
	Price           float64
	ImageURL        string
	AffiliateURL    string
	CustomerReviews float64
	BestSellersRank int
	RewardEligible  *bool
}

// UpdatePatch holds optional product fields; nil fields are left untouched
type UpdatePatch struct {
	Title           *string
	Description     *string
	ASIN            *string
	Price           *float64
	ImageURL        *string
	AffiliateURL    *string
	CustomerReviews *float64
	BestSellersRank *int
	RewardEligible  *bool
}

// List returns all products, serving from the cache when possible. Cache
// failures fall through to the database and are logged only.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	hit, err := s.cache.Get(ctx, productListKey, &products)
	if err != nil {
		log.Printf("Product cache read failed: %v", err)
	}
	if hit {
		return products, nil
	}

	if err := s.db.WithContext(ctx).Order("best_sellers_rank ASC, id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	if err := s.cache.Set(ctx, productListKey, products, productListTTL); err != nil {
		log.Printf("Product cache write failed: %v", err)
	}

	return products, nil
}

// Get returns a single product by id
func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding product: %w", err)
	}
	return &product, nil
}

// Create validates and persists a new product
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if input.Price == 0 {
		return nil, fmt.Errorf("%w: price", ErrMissingField)
	}
	if input.ImageURL == "" {
		return nil, fmt.Errorf("%w: image_url", ErrMissingField)
	}
	if input.AffiliateURL == "" {
		return nil, fmt.Errorf("%w: affiliate_url", ErrMissingField)
	}

	var existing models.Product
	err := s.db.WithContext(ctx).Where("title = ?", input.Title).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateProduct
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking existing product: %w", err)
	}

	rewardEligible := true
	if input.RewardEligible != nil {
		rewardEligible = *input.RewardEligible
	}

	product := models.Product{
		Title:           input.Title,
		Description:     input.Description,
		Slug:            slug.Make(input.Title),
		ASIN:            input.ASIN,
		Price:           input.Price,
		ImageURL:        input.ImageURL,
		AffiliateURL:    input.AffiliateURL,
		CustomerReviews: input.CustomerReviews,
		BestSellersRank: input.BestSellersRank,
		RewardEligible:  rewardEligible,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}

	s.invalidate(ctx)
	return &product, nil
}

// Update applies a partial patch to a product
func (s *Service) Update(ctx context.Context, id uint, patch UpdatePatch) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
		updates["slug"] = slug.Make(*patch.Title)
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ASIN != nil {
		updates["asin"] = *patch.ASIN
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.AffiliateURL != nil {
		updates["affiliate_url"] = *patch.AffiliateURL
	}
	if patch.CustomerReviews != nil {
		updates["customer_reviews"] = *patch.CustomerReviews
	}
	if patch.BestSellersRank != nil {
		updates["best_sellers_rank"] = *patch.BestSellersRank
	}
	if patch.RewardEligible != nil {
		updates["reward_eligible"] = *patch.RewardEligible
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("error updating product: %w", err)
		}
		s.invalidate(ctx)
	}

	return product, nil
}

// Delete removes a product from the catalog
func (s *Service) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return fmt.Errorf("error deleting product: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// RefreshFromAmazon updates a product's catalog data from a fetched Amazon
// item. Used by the scheduled sync job.
func (s *Service) RefreshFromAmazon(ctx context.Context, id uint, title string, price float64, imageURL string, salesRank int) error {
	updates := map[string]interface{}{}
	if title != "" {
		updates["title"] = title
		updates["slug"] = slug.Make(title)
	}
	if price > 0 {
		updates["price"] = price
	}
	if imageURL != "" {
		updates["image_url"] = imageURL
	}
	if salesRank > 0 {
		updates["best_sellers_rank"] = salesRank
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("error refreshing product %d: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

// ListWithASIN returns products that carry an Amazon ASIN
func (s *Service) ListWithASIN(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("asin IS NOT NULL AND asin <> ''").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("error listing products with ASIN: %w", err)
	}
	return products, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, productListKey); err != nil {
		log.Printf("Product cache invalidation failed: %v", err)
	}
}
