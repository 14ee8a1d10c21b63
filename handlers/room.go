package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/adeel/roomshare-backend/auth/middleware"
	"github.com/adeel/roomshare-backend/rooms"
)

type createRoomRequest struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Pin  string `json:"pin"`
}

// CreateRoom creates a room and, for multipart requests, uploads any files
// submitted alongside it. The creator's session gets a grant for the new
// key immediately.
func (h *Handler) CreateRoom(c *gin.Context) {
	userID := middleware.UserID(c)

	var req createRoomRequest
	multipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")
	if multipart {
		req.Key = c.PostForm("key")
		req.Name = c.PostForm("name")
		req.Pin = c.PostForm("pin")
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	room, err := h.lifecycle.CreateRoom(c.Request.Context(), req.Key, strings.TrimSpace(req.Name), req.Pin, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	grantsFrom(c).SetGrant(room.Key, room.Pin)

	var result *rooms.UploadResult
	if multipart {
		if form, err := c.MultipartForm(); err == nil && len(form.File["files"]) > 0 {
			candidates, closeAll, err := buildCandidates(form.File["files"])
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded files"})
				return
			}
			defer closeAll()

			result, err = h.uploads.UploadFiles(c.Request.Context(), room, userID, candidates)
			if err != nil {
				respondError(c, err)
				return
			}
			room.Files = result.Accepted
		}
	}

	resp := gin.H{"room": room}
	if result != nil {
		resp["rejected"] = result.Rejected
	}
	c.JSON(http.StatusOK, resp)
}

// GetRoom returns a room with its files. The owner gets through on their
// token alone; everyone else needs a standing grant, which is revalidated
// against the authoritative PIN on every load.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.lifecycle.GetRoom(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"room": room}
	if rooms.IsOwner(room, middleware.UserID(c)) {
		// The owner sees the PIN so they can share it.
		resp["pin"] = room.Pin
	} else {
		granted, err := h.access.HasStandingGrant(c.Request.Context(), grantsFrom(c), room.Key)
		if err != nil {
			respondError(c, err)
			return
		}
		if !granted {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "PIN required"})
			return
		}
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyPin checks a candidate PIN and stores a session grant on success.
// A missing room (404) and a wrong PIN (403) are reported distinctly so the
// client can redirect or re-prompt accordingly.
func (h *Handler) VerifyPin(c *gin.Context) {
	var req struct {
		Pin string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	key := rooms.NormalizeKey(c.Param("key"))
	if err := h.access.VerifyPin(c.Request.Context(), key, req.Pin); err != nil {
		respondError(c, err)
		return
	}

	grantsFrom(c).SetGrant(key, req.Pin)
	c.JSON(http.StatusOK, gin.H{"granted": true})
}

func (h *Handler) ListRooms(c *gin.Context) {
	list, err := h.lifecycle.ListRooms(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": list})
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	room, err := h.lifecycle.GetRoom(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.lifecycle.DeleteRoom(c.Request.Context(), room.ID, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ShareQR renders the room's share link as a QR code PNG. Owner or grant
// holder only.
func (h *Handler) ShareQR(c *gin.Context) {
	room, err := h.lifecycle.GetRoom(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	if !rooms.IsOwner(room, middleware.UserID(c)) {
		granted, err := h.access.HasStandingGrant(c.Request.Context(), grantsFrom(c), room.Key)
		if err != nil {
			respondError(c, err)
			return
		}
		if !granted {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "PIN required"})
			return
		}
	}

	shareURL := h.frontendURL + "/room.html?id=" + room.Key
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
