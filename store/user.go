package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.DuplicateKey("an account with this email already exists")
		}
		return apperr.Upstream("failed to create account", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Upstream("failed to load user", err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Upstream("failed to load user", err)
	}
	return &user, nil
}

// GetUserByProvider finds the account linked to an OAuth identity.
func (s *Store) GetUserByProvider(ctx context.Context, provider, providerID string) (*models.User, error) {
	var user models.User
	q := s.db.WithContext(ctx)
	switch provider {
	case "google":
		q = q.Where("google_id = ?", providerID)
	case "github":
		q = q.Where("git_hub_id = ?", providerID)
	default:
		return nil, apperr.Validation("provider", "unsupported oauth provider")
	}
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Upstream("failed to load user", err)
	}
	return &user, nil
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return apperr.Upstream("failed to update account", err)
	}
	return nil
}
