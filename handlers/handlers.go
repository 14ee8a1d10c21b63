// Package handlers binds the HTTP surface to the core services.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/rooms"
	"github.com/adeel/roomshare-backend/store"
)

type Handler struct {
	store       *store.Store
	access      *rooms.AccessController
	uploads     *rooms.UploadOrchestrator
	lifecycle   *rooms.LifecycleManager
	frontendURL string
}

func New(st *store.Store, access *rooms.AccessController, uploads *rooms.UploadOrchestrator, lifecycle *rooms.LifecycleManager, frontendURL string) *Handler {
	return &Handler{
		store:       st,
		access:      access,
		uploads:     uploads,
		lifecycle:   lifecycle,
		frontendURL: frontendURL,
	}
}

// respondError maps taxonomy kinds onto HTTP statuses. Upstream causes stay
// in the server log; clients get the caller-facing message only.
func respondError(c *gin.Context, err error) {
	msg := apperr.Message(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case apperr.KindAuthorization:
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
	case apperr.KindDuplicateKey:
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	case apperr.KindPartialFailure:
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong, please try again"})
	}
}
