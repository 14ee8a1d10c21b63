package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adeel/roomshare-backend/auth/middleware"
	"github.com/adeel/roomshare-backend/rooms"
)

// buildCandidates opens the multipart file parts in presentation order. The
// returned closer releases all of them once the batch is done.
func buildCandidates(headers []*multipart.FileHeader) ([]rooms.Candidate, func(), error) {
	candidates := make([]rooms.Candidate, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, cl := range closers {
			cl.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)
		candidates = append(candidates, rooms.Candidate{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}
	return candidates, closeAll, nil
}

// UploadFiles adds files to an existing room. Owner only; per-file
// rejections are reported in-band, not as an HTTP error.
func (h *Handler) UploadFiles(c *gin.Context) {
	room, err := h.lifecycle.GetRoom(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	candidates, closeAll, err := buildCandidates(form.File["files"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded files"})
		return
	}
	defer closeAll()

	result, err := h.uploads.UploadFiles(c.Request.Context(), room, middleware.UserID(c), candidates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file id"})
		return
	}

	if err := h.lifecycle.DeleteFile(c.Request.Context(), fileID, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
