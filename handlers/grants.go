package handlers

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/adeel/roomshare-backend/rooms"
)

// sessionGrants backs rooms.GrantStore with the request's cookie session:
// one accepted PIN per unlocked room key, scoped to the browsing session.
type sessionGrants struct {
	session sessions.Session
}

func grantsFrom(c *gin.Context) rooms.GrantStore {
	return &sessionGrants{session: sessions.Default(c)}
}

func grantKey(roomKey string) string {
	return "room_pin_" + roomKey
}

func (g *sessionGrants) Grant(roomKey string) (string, bool) {
	pin, ok := g.session.Get(grantKey(roomKey)).(string)
	return pin, ok
}

func (g *sessionGrants) SetGrant(roomKey, pin string) {
	g.session.Set(grantKey(roomKey), pin)
	if err := g.session.Save(); err != nil {
		log.Printf("saving grant for room %s failed: %v", roomKey, err)
	}
}

func (g *sessionGrants) ClearGrant(roomKey string) {
	g.session.Delete(grantKey(roomKey))
	if err := g.session.Save(); err != nil {
		log.Printf("clearing grant for room %s failed: %v", roomKey, err)
	}
}
