package handlers

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/adeel/roomshare-backend/auth/middleware"
)

// DeleteAccount removes every room the user owns, their blobs, and the
// account itself, then drops the session.
func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.lifecycle.DeleteAccount(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("clearing session failed: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
