package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/smarterpicks/backend/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means the user id does not resolve
	ErrNotFound = errors.New("user not found")

	// ErrMissingField means a required user field is absent
	ErrMissingField = errors.New("missing required field")

	// ErrAlreadyExists means a user with this id is already synced
	ErrAlreadyExists = errors.New("user already exists")
)

// Service mirrors identity-provider users into the local users table. The
// provider owns credentials and sessions; we only keep the (id, name, email)
// triple plus the payout email the reward workflow denormalizes.
type Service struct {
	db *gorm.DB
}

// NewService creates a new identity service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Sync records a user from the identity provider. The id is the provider's
// subject and must be unique.
func (s *Service) Sync(ctx context.Context, id, name, email string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingField)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	}

	var existing models.User
	err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	user := models.User{ID: id, Name: name, Email: email}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &user, nil
}

// Get returns a user by id
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

// List returns all users (admin view)
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// UpdatePatch holds optional user fields; nil fields are left untouched
type UpdatePatch struct {
	Name        *string
	Email       *string
	PayoutEmail *string
}

// Update applies a partial patch to a user
func (s *Service) Update(ctx context.Context, id string, patch UpdatePatch) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.PayoutEmail != nil {
		updates["payout_email"] = *patch.PayoutEmail
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("error updating user: %w", err)
		}
	}

	return user, nil
}
