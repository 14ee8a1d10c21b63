package rooms

import (
	"context"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/adeel/roomshare-backend/apperr"
	"github.com/adeel/roomshare-backend/models"
	"github.com/adeel/roomshare-backend/storage"
)

// Rejection reasons reported per candidate file.
const (
	ReasonNotAuthorized      = "not authorized"
	ReasonTooLarge           = "too large"
	ReasonQuotaExceeded      = "quota exceeded"
	ReasonStorageFailed      = "storage failed"
	ReasonRegistrationFailed = "registration failed"
)

// Candidate is one file presented for upload.
type Candidate struct {
	Name        string
	ContentType string
	Size        int64
	Data        io.Reader
}

type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult aggregates a batch. Both lists preserve the order the files
// were presented in.
type UploadResult struct {
	Accepted []models.FileRecord `json:"accepted"`
	Rejected []Rejection         `json:"rejected"`
}

// UploadOrchestrator coordinates multi-file uploads against the size and
// count quotas, registering each blob only after it is durably stored.
type UploadOrchestrator struct {
	files   FileStore
	objects storage.ObjectStore
}

func NewUploadOrchestrator(files FileStore, objects storage.ObjectStore) *UploadOrchestrator {
	return &UploadOrchestrator{files: files, objects: objects}
}

// UploadFiles processes candidates sequentially and independently: one
// file's failure never aborts the batch. If a blob is stored but its
// metadata insert fails, the blob is deleted again (best effort) before the
// file is reported rejected. Returns AuthorizationError alongside the
// per-file rejections when the requester does not own the room.
func (u *UploadOrchestrator) UploadFiles(ctx context.Context, room *models.Room, requesterID uuid.UUID, candidates []Candidate) (*UploadResult, error) {
	res := &UploadResult{
		Accepted: []models.FileRecord{},
		Rejected: []Rejection{},
	}

	if !IsOwner(room, requesterID) {
		for _, c := range candidates {
			res.Rejected = append(res.Rejected, Rejection{Name: c.Name, Reason: ReasonNotAuthorized})
		}
		return res, apperr.Authorization("only the room owner can upload files")
	}

	existing, err := u.files.CountFilesByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		if c.Size > MaxFileSize {
			res.Rejected = append(res.Rejected, Rejection{Name: c.Name, Reason: ReasonTooLarge})
			continue
		}
		// Quota is re-checked per candidate so acceptances earlier in the
		// batch count against later ones.
		if existing+int64(len(res.Accepted)) >= MaxFilesPerRoom {
			res.Rejected = append(res.Rejected, Rejection{Name: c.Name, Reason: ReasonQuotaExceeded})
			continue
		}

		path := StoragePath(room.Key, c.Name)
		url, err := u.objects.Put(ctx, path, c.ContentType, c.Data)
		if err != nil {
			log.Printf("upload of %s to room %s failed: %v", c.Name, room.Key, err)
			res.Rejected = append(res.Rejected, Rejection{Name: c.Name, Reason: ReasonStorageFailed})
			continue
		}

		rec := models.FileRecord{
			ID:          uuid.New(),
			RoomID:      room.ID,
			Name:        c.Name,
			ContentType: c.ContentType,
			Size:        c.Size,
			URL:         url,
		}
		if err := u.files.CreateFile(ctx, &rec); err != nil {
			log.Printf("registering %s in room %s failed: %v", c.Name, room.Key, err)
			// Compensating delete of the already-stored blob. Failure here
			// leaves an orphan, which the sweeper bounds; it is logged, not
			// escalated.
			if rmErr := u.objects.Remove(ctx, []string{path}); rmErr != nil {
				log.Printf("cleanup of stored blob %s failed: %v", path, rmErr)
			}
			res.Rejected = append(res.Rejected, Rejection{Name: c.Name, Reason: ReasonRegistrationFailed})
			continue
		}

		res.Accepted = append(res.Accepted, rec)
	}

	return res, nil
}
