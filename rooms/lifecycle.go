package rooms

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/models"
	"github.com/adeel/roomshare-backend/storage"
)

// LifecycleManager coordinates room and file creation, listing, and
// cascading deletion across the record store and the object store.
type LifecycleManager struct {
	rooms    RoomStore
	files    FileStore
	accounts AccountStore
	objects  storage.ObjectStore
}

func NewLifecycleManager(rooms RoomStore, files FileStore, accounts AccountStore, objects storage.ObjectStore) *LifecycleManager {
	return &LifecycleManager{rooms: rooms, files: files, accounts: accounts, objects: objects}
}

// CreateRoom validates inputs, pre-checks key availability, then inserts.
// The pre-check is an optimization for a friendly early rejection; the
// store's uniqueness constraint is the source of truth, so a concurrent
// creator losing the race still gets DuplicateKeyError.
func (m *LifecycleManager) CreateRoom(ctx context.Context, key, name, pin string, ownerID uuid.UUID) (*models.Room, error) {
	key = NormalizeKey(key)
	if name == "" {
		return nil, apperr.Validation("name", "room name is required")
	}
	if key == "" {
		return nil, apperr.Validation("key", "room key is required")
	}
	if !keyPattern.MatchString(key) {
		return nil, apperr.Validation("key", "room key can only contain letters, numbers, and hyphens")
	}
	if !pinPattern.MatchString(pin) {
		return nil, apperr.Validation("pin", "pin must be exactly 4 digits")
	}
	if ownerID == uuid.Nil {
		return nil, apperr.Authorization("sign in to create a room")
	}

	if _, err := m.rooms.GetRoomByKey(ctx, key); err == nil {
		return nil, apperr.DuplicateKey("room key already exists, please choose a different one")
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	room := &models.Room{
		ID:        uuid.New(),
		Key:       key,
		Name:      name,
		Pin:       pin,
		CreatedBy: ownerID,
		Files:     []models.FileRecord{},
	}
	if err := m.rooms.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (m *LifecycleManager) GetRoom(ctx context.Context, key string) (*models.Room, error) {
	return m.rooms.GetRoomByKey(ctx, NormalizeKey(key))
}

func (m *LifecycleManager) ListRooms(ctx context.Context, ownerID uuid.UUID) ([]models.Room, error) {
	return m.rooms.ListRoomsByOwner(ctx, ownerID)
}

// DeleteRoom removes a room's blobs (best effort) and then the room record;
// the record delete cascades to the room's file records at the storage
// layer. Owner only.
func (m *LifecycleManager) DeleteRoom(ctx context.Context, roomID, requesterID uuid.UUID) error {
	room, err := m.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !IsOwner(room, requesterID) {
		return apperr.Authorization("only the room owner can delete this room")
	}
	m.removeRoomBlobs(ctx, room.Key)
	return m.rooms.DeleteRoom(ctx, room.ID)
}

// DeleteFile removes the blob (best effort, logged on failure) and then the
// metadata record. Metadata surviving silently would orphan the row, so a
// failed record delete is escalated: PartialFailure when the blob is already
// gone, otherwise the store error as-is.
func (m *LifecycleManager) DeleteFile(ctx context.Context, fileID, requesterID uuid.UUID) error {
	rec, err := m.files.GetFileByID(ctx, fileID)
	if err != nil {
		return err
	}
	room, err := m.rooms.GetRoomByID(ctx, rec.RoomID)
	if err != nil {
		return err
	}
	if !IsOwner(room, requesterID) {
		return apperr.Authorization("only the room owner can delete files")
	}

	blobRemoved := false
	path, err := StoragePathFromURL(rec.URL)
	if err != nil {
		log.Printf("cannot derive blob path for file %s: %v", rec.ID, err)
	} else if err := m.objects.Remove(ctx, []string{path}); err != nil {
		log.Printf("removing blob %s failed: %v", path, err)
	} else {
		blobRemoved = true
	}

	if err := m.files.DeleteFile(ctx, rec.ID); err != nil {
		if blobRemoved {
			return apperr.PartialFailure("file blob was removed but its metadata could not be deleted", err)
		}
		return err
	}
	return nil
}

// DeleteAccount removes the blobs of every room the user owns (best effort)
// and then hands off to the store's atomic routine that deletes the user's
// rooms, files, and account row together.
func (m *LifecycleManager) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	owned, err := m.rooms.ListRoomsByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for _, room := range owned {
		m.removeRoomBlobs(ctx, room.Key)
	}
	return m.accounts.DeleteUserData(ctx, userID)
}

// removeRoomBlobs bulk-removes everything stored under the room's key
// prefix. Partial failure leaves orphaned blobs, which is an accepted cost;
// it is logged and never escalated.
func (m *LifecycleManager) removeRoomBlobs(ctx context.Context, roomKey string) {
	paths, err := m.objects.List(ctx, roomKey+"/")
	if err != nil {
		log.Printf("listing blobs for room %s failed: %v", roomKey, err)
		return
	}
	if len(paths) == 0 {
		return
	}
	if err := m.objects.Remove(ctx, paths); err != nil {
		log.Printf("removing %d blobs for room %s failed: %v", len(paths), roomKey, err)
	}
}
