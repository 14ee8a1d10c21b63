package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileRecord is the metadata row for one stored blob. It is created only
// after the blob is durably stored, and cascades away with its room.
type FileRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoomID      uuid.UUID `gorm:"type:uuid;index;not null" json:"room_id"`
	Name        string    `gorm:"not null" json:"name"`
	ContentType string    `json:"type"`
	Size        int64     `json:"size"`
	URL         string    `gorm:"not null" json:"url"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (f *FileRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
