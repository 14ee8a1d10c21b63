// Package store is the gorm-backed persistence layer. Every method
// translates gorm errors into the apperr taxonomy; raw database errors
// never leave this package.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.DuplicateKey("room key already exists, please choose a different one")
		}
		return apperr.Upstream("failed to create room", err)
	}
	return nil
}

func (s *Store) GetRoomByKey(ctx context.Context, key string) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at ASC") }).
		Where("key = ?", key).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Upstream("failed to load room", err)
	}
	return &room, nil
}

func (s *Store) GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("room not found")
		}
		return nil, apperr.Upstream("failed to load room", err)
	}
	return &room, nil
}

func (s *Store) ListRoomsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at ASC") }).
		Where("created_by = ?", owner).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, apperr.Upstream("failed to list rooms", err)
	}
	return rooms, nil
}

// DeleteRoom removes the room row; the FK constraint cascades the delete to
// all of the room's file records.
func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.Room{}, "id = ?", id).Error; err != nil {
		return apperr.Upstream("failed to delete room", err)
	}
	return nil
}

func (s *Store) CreateFile(ctx context.Context, rec *models.FileRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return apperr.Upstream("failed to save file metadata", err)
	}
	return nil
}

func (s *Store) GetFileByID(ctx context.Context, id uuid.UUID) (*models.FileRecord, error) {
	var rec models.FileRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("file not found")
		}
		return nil, apperr.Upstream("failed to load file", err)
	}
	return &rec, nil
}

func (s *Store) CountFilesByRoom(ctx context.Context, roomID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.FileRecord{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Upstream("failed to count files", err)
	}
	return count, nil
}

func (s *Store) DeleteFile(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.FileRecord{}, "id = ?", id).Error; err != nil {
		return apperr.Upstream("failed to delete file metadata", err)
	}
	return nil
}

// DeleteUserData removes all of a user's rooms (cascading their files) and
// the user row in one transaction, so account deletion cannot leave partial
// rows behind.
func (s *Store) DeleteUserData(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Room{}, "created_by = ?", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return apperr.Upstream("failed to delete account data", err)
	}
	return nil
}
