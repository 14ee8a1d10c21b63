package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a PIN-protected container for files. The key is the externally
// shared identifier and doubles as the object-store path prefix.
type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Name      string    `gorm:"not null" json:"name"`
	Pin       string    `gorm:"not null" json:"-"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Files []FileRecord `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"files"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
