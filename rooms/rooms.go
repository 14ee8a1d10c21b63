// Package rooms holds the addressable core of the service: PIN access
// control, the upload orchestrator, and the room/file lifecycle manager.
// It talks to persistence and blob storage through small interfaces so it
// can be exercised without Postgres or S3.
package rooms

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"

	"github.com/adeel/roomshare-backend/models"
)

const (
	// MaxFileSize is the per-file upload cap.
	MaxFileSize = 10 << 20 // 10 MiB
	// MaxFilesPerRoom is the advisory per-room file quota.
	MaxFilesPerRoom = 10
)

var (
	keyPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	pinPattern = regexp.MustCompile(`^[0-9]{4}$`)
)

type RoomStore interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoomByKey(ctx context.Context, key string) (*models.Room, error)
	GetRoomByID(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRoomsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type FileStore interface {
	CreateFile(ctx context.Context, rec *models.FileRecord) error
	GetFileByID(ctx context.Context, id uuid.UUID) (*models.FileRecord, error)
	CountFilesByRoom(ctx context.Context, roomID uuid.UUID) (int64, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
}

type AccountStore interface {
	// DeleteUserData atomically removes all rooms, files, and the account
	// row of a user.
	DeleteUserData(ctx context.Context, userID uuid.UUID) error
}

// NormalizeKey case-normalizes a room key. Lookups and uniqueness checks
// always operate on the normalized form.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// StoragePath builds a collision-resistant blob path for a file in a room:
// the room key prefix, a timestamp plus random suffix, and the original
// extension.
func StoragePath(roomKey, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%d-%s%s", roomKey, time.Now().UnixMilli(), shortuuid.New(), ext)
}

// StoragePathFromURL recovers the blob path (roomKey/fileName) from a file
// record's durable URL.
func StoragePathFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("unexpected file url path %q", u.Path)
	}
	return strings.Join(parts[len(parts)-2:], "/"), nil
}
