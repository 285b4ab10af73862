package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smarterpicks/backend/internal/models"
	"gorm.io/gorm"
)

// ProductSummary is the product slice of a decorated listing row. JSON keys
// match the storefront wire contract.
type ProductSummary struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	AffiliateURL string  `json:"affiliate_url"`
}

// RequestView is a reward request decorated with the requester's display name
// and a product summary for list/detail views.
type RequestView struct {
	ID               uint                       `json:"id"`
	UserID           string                     `json:"userId"`
	UserName         string                     `json:"userName"`
	Status           models.RewardRequestStatus `json:"status"`
	OrderScreenshot  string                     `json:"orderScreenshot"`
	ReviewScreenshot *string                    `json:"reviewScreenshot"`
	ReviewLink       *string                    `json:"reviewLink"`
	ProofOfPayment   *string                    `json:"proofOfPayment"`
	Comments         *string                    `json:"comments"`
	CreatedAt        time.Time                  `json:"createdAt"`
	UpdatedAt        time.Time                  `json:"updatedAt"`
	Product          ProductSummary             `json:"product"`
}

// CommentView is a ledger comment decorated with its author's display name.
type CommentView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter narrows a listing to one requester and/or one status. A zero
// filter returns every request (admin view).
type ListFilter struct {
	UserID string
	Status *models.RewardRequestStatus
}

// List returns reward requests decorated with requester name and product
// summary, newest first. No matches yields an empty slice, not an error.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]RequestView, error) {
	q := s.db.WithContext(ctx).
		Model(&models.RewardRequest{}).
		Preload("User").
		Preload("Product").
		Order("created_at DESC")

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var requests []models.RewardRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("error listing reward requests: %w", err)
	}

	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		views = append(views, newRequestView(&requests[i]))
	}
	return views, nil
}

// Get returns a single decorated reward request.
func (s *Service) Get(ctx context.Context, id uint) (*RequestView, error) {
	var request models.RewardRequest
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Product").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error loading reward request: %w", err)
	}

	view := newRequestView(&request)
	return &view, nil
}

// ListComments returns the request's ledger ordered oldest first, with author
// display names resolved. A request without comments yields an empty slice;
// an unknown or deleted request yields ErrNotFound.
func (s *Service) ListComments(ctx context.Context, id uint) ([]CommentView, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	views := []CommentView{}
	err := s.db.WithContext(ctx).
		Table("reward_comments").
		Select("reward_comments.id, reward_comments.user_id, COALESCE(users.name, reward_comments.user_id) AS user_name, reward_comments.comment, reward_comments.created_at").
		Joins("LEFT JOIN users ON users.id = reward_comments.user_id").
		Where("reward_comments.reward_request_id = ?", id).
		Order("reward_comments.created_at ASC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	return views, nil
}

func newRequestView(r *models.RewardRequest) RequestView {
	return RequestView{
		ID:               r.ID,
		UserID:           r.UserID,
		UserName:         r.User.Name,
		Status:           r.Status,
		OrderScreenshot:  r.OrderScreenshot,
		ReviewScreenshot: r.ReviewScreenshot,
		ReviewLink:       r.ReviewLink,
		ProofOfPayment:   r.ProofOfPayment,
		Comments:         r.Comments,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Product: ProductSummary{
			ID:           r.Product.ID,
			Title:        r.Product.Title,
			Price:        r.Product.Price,
			ImageURL:     r.Product.ImageURL,
			AffiliateURL: r.Product.AffiliateURL,
		},
	}
}
