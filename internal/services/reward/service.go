package reward

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/smarterpicks/backend/internal/models"
	"github.com/smarterpicks/backend/internal/storage"
	"gorm.io/gorm"
)

// Service owns the reward request workflow: creation, partial updates,
// deletion, status transitions and the comment ledger. Store and db handles
// are injected; nothing reaches for ambient state.
type Service struct {
	db    *gorm.DB
	store storage.Store
}

// NewService creates a new reward service
func NewService(db *gorm.DB, store storage.Store) *Service {
	return &Service{db: db, store: store}
}

// Upload carries an attachment file through the service layer
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// CreateInput is the payload for creating a reward request
type CreateInput struct {
	UserID          string
	ProductID       uint
	PayoutEmail     string
	OrderScreenshot *Upload
}

// UpdatePatch holds the status-independent fields a request update may carry.
// Nil fields are left untouched; status changes go through RequestTransition
// instead.
type UpdatePatch struct {
	ReviewLink       *string
	Comments         *string
	ReviewScreenshot *Upload
	ProofOfPayment   *Upload
}

// Create validates and persists a new reward request in Pending Verification.
// The payout email is also denormalized onto the user record. An order
// screenshot upload failure is logged and degrades to an empty URL rather
// than failing the request, matching the availability-over-completeness
// stance of the attachment store.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.RewardRequest, error) {
	if input.UserID == "" {
		return nil, missingField("userId")
	}
	if input.ProductID == 0 {
		return nil, missingField("productId")
	}
	if input.OrderScreenshot == nil {
		return nil, missingField("orderScreenshot")
	}
	if strings.TrimSpace(input.PayoutEmail) == "" {
		return nil, missingField("paypalEmail")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidActor
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding product: %w", err)
	}

	// One request per (user, product); soft-deleted rows don't count
	var existing models.RewardRequest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", input.UserID, input.ProductID).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking existing request: %w", err)
	}

	payoutEmail := strings.TrimSpace(input.PayoutEmail)
	if user.PayoutEmail == nil || *user.PayoutEmail != payoutEmail {
		if err := s.db.WithContext(ctx).Model(&user).Update("payout_email", payoutEmail).Error; err != nil {
			return nil, fmt.Errorf("error saving payout email: %w", err)
		}
	}

	orderScreenshotURL := s.upload(ctx, input.OrderScreenshot)

	request := models.RewardRequest{
		UserID:          input.UserID,
		ProductID:       input.ProductID,
		Status:          models.StatusPendingVerification,
		OrderScreenshot: orderScreenshotURL,
		PayoutEmail:     payoutEmail,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, fmt.Errorf("error creating reward request: %w", err)
	}

	return &request, nil
}

// Update applies a partial patch to a reward request. Only fields present in
// the patch are mutated. Image uploads that fail leave the corresponding
// field unset instead of aborting the update.
func (s *Service) Update(ctx context.Context, id uint, patch UpdatePatch) (*models.RewardRequest, error) {
	request, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if patch.ReviewLink != nil {
		updates["review_link"] = *patch.ReviewLink
	}
	if patch.Comments != nil {
		updates["comments"] = *patch.Comments
	}
	if patch.ReviewScreenshot != nil {
		if url := s.upload(ctx, patch.ReviewScreenshot); url != "" {
			updates["review_screenshot"] = url
		}
	}
	if patch.ProofOfPayment != nil {
		if url := s.upload(ctx, patch.ProofOfPayment); url != "" {
			updates["proof_of_payment"] = url
		}
	}

	updates["updated_at"] = time.Now()

	if err := s.db.WithContext(ctx).Model(request).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("error updating reward request: %w", err)
	}

	return request, nil
}

// Delete removes a reward request, its comments and, best effort, its stored
// attachments. Attachment delete failures are logged and never block the
// record deletion.
func (s *Service) Delete(ctx context.Context, id uint) error {
	request, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	for _, url := range request.AttachmentURLs() {
		key := storage.KeyFromURL(url)
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("Failed to delete attachment %s for request %d: %v", key, id, err)
		}
	}

	if err := s.db.WithContext(ctx).
		Where("reward_request_id = ?", id).
		Delete(&models.RewardComment{}).Error; err != nil {
		return fmt.Errorf("error deleting comments: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(request).Error; err != nil {
		return fmt.Errorf("error deleting reward request: %w", err)
	}

	return nil
}

// RequestTransition moves a reward request to the target status and appends
// the SYSTEM audit comment attributed to the acting user's display name. The
// status write lands first; a comment append failure is logged, not rolled
// back.
func (s *Service) RequestTransition(ctx context.Context, id uint, actingUserID string, target models.RewardRequestStatus) (*models.RewardRequest, error) {
	request, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var actor models.User
	if err := s.db.WithContext(ctx).First(&actor, "id = ?", actingUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidActor
		}
		return nil, fmt.Errorf("error finding acting user: %w", err)
	}

	if target == request.Status {
		return nil, ErrNoOpTransition
	}
	if !target.Valid() || !CanTransition(request.Status, target) {
		return nil, ErrIllegalTransition
	}

	previous := request.Status
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(request).Updates(map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("error updating status: %w", err)
	}
	request.Status = target
	request.UpdatedAt = now

	comment := models.RewardComment{
		RewardRequestID: request.ID,
		UserID:          models.SystemCommentAuthor,
		Comment:         statusChangeComment(previous, target, actor.Name),
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		log.Printf("Failed to record status change comment for request %d: %v", request.ID, err)
	}

	return request, nil
}

// AddComment appends a comment to a reward request's ledger
func (s *Service) AddComment(ctx context.Context, id uint, authorID, body string) (*models.RewardComment, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	if authorID == "" {
		return nil, missingField("userId")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	comment := models.RewardComment{
		RewardRequestID: id,
		UserID:          authorID,
		Comment:         body,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	return &comment, nil
}

// get fetches a live reward request or reports ErrNotFound
func (s *Service) get(ctx context.Context, id uint) (*models.RewardRequest, error) {
	var request models.RewardRequest
	if err := s.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding reward request: %w", err)
	}
	return &request, nil
}

// upload stores an attachment and returns its public URL, or an empty string
// when the upload fails. Failures are logged only; the caller keeps going
// with the degraded value.
func (s *Service) upload(ctx context.Context, file *Upload) string {
	if file == nil {
		return ""
	}
	key := storage.ObjectKey(file.Filename)
	url, err := s.store.Put(ctx, key, file.Reader, file.Size, file.ContentType)
	if err != nil {
		log.Printf("Failed to upload attachment %s: %v", key, err)
		return ""
	}
	return url
}
