package rooms

import (
	"context"

	"github.com/google/uuid"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/models"
)

// GrantStore holds the browsing session's access grants: one accepted PIN
// per room key. It is session-local state, never persisted server-side.
type GrantStore interface {
	Grant(roomKey string) (pin string, ok bool)
	SetGrant(roomKey, pin string)
	ClearGrant(roomKey string)
}

// AccessController validates room-key/PIN pairs and revalidates standing
// grants against the authoritative PIN.
type AccessController struct {
	rooms RoomStore
}

func NewAccessController(rooms RoomStore) *AccessController {
	return &AccessController{rooms: rooms}
}

// VerifyPin checks a candidate PIN against the room's stored PIN. A missing
// room reports NotFound, a wrong PIN reports Authorization; the two are
// never conflated so callers can route differently.
func (a *AccessController) VerifyPin(ctx context.Context, roomKey, candidatePin string) error {
	room, err := a.rooms.GetRoomByKey(ctx, NormalizeKey(roomKey))
	if err != nil {
		return err
	}
	if room.Pin != candidatePin {
		return apperr.Authorization("incorrect pin")
	}
	return nil
}

// HasStandingGrant reports whether the session holds a grant for the room
// that still matches the authoritative PIN. A stale or forged grant is
// purged, never trusted. If the room no longer exists the grant is purged
// and NotFound is returned.
func (a *AccessController) HasStandingGrant(ctx context.Context, grants GrantStore, roomKey string) (bool, error) {
	key := NormalizeKey(roomKey)
	pin, ok := grants.Grant(key)
	if !ok {
		return false, nil
	}
	room, err := a.rooms.GetRoomByKey(ctx, key)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			grants.ClearGrant(key)
		}
		return false, err
	}
	if room.Pin != pin {
		grants.ClearGrant(key)
		return false, nil
	}
	return true, nil
}

// IsOwner reports whether userID owns the room. The owner always has full
// access regardless of PIN state.
func IsOwner(room *models.Room, userID uuid.UUID) bool {
	return userID != uuid.Nil && room.CreatedBy == userID
}
