package rooms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeel/roomshare-backend/apperr"
)

func candidate(name string, size int64) Candidate {
	return Candidate{
		Name:        name,
		ContentType: "application/octet-stream",
		Size:        size,
		Data:        bytes.NewReader([]byte("data")),
	}
}

func TestUploadFiles_RejectsOversizedFileOnly(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	orch := NewUploadOrchestrator(st, obj)

	batch := []Candidate{
		candidate("a.txt", 1<<20),
		candidate("big.bin", MaxFileSize+1),
		candidate("c.txt", 2<<20),
	}
	res, err := orch.UploadFiles(context.Background(), room, owner, batch)
	require.NoError(t, err)

	require.Len(t, res.Accepted, 2)
	assert.Equal(t, "a.txt", res.Accepted[0].Name)
	assert.Equal(t, "c.txt", res.Accepted[1].Name)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, Rejection{Name: "big.bin", Reason: ReasonTooLarge}, res.Rejected[0])

	count, err := st.CountFilesByRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUploadFiles_CapSizedFileAccepted(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	orch := NewUploadOrchestrator(st, obj)

	res, err := orch.UploadFiles(context.Background(), room, owner, []Candidate{candidate("edge.bin", MaxFileSize)})
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 1)
	assert.Empty(t, res.Rejected)
}

func TestUploadFiles_QuotaExceededAtFullRoom(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	for i := 0; i < MaxFilesPerRoom; i++ {
		seedFile(t, st, obj, room, fmt.Sprintf("f%d.txt", i), 100)
	}
	orch := NewUploadOrchestrator(st, obj)

	res, err := orch.UploadFiles(context.Background(), room, owner, []Candidate{
		candidate("x.txt", 100),
		candidate("y.txt", 100),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	require.Len(t, res.Rejected, 2)
	for _, rej := range res.Rejected {
		assert.Equal(t, ReasonQuotaExceeded, rej.Reason)
	}

	count, err := st.CountFilesByRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxFilesPerRoom), count)
}

func TestUploadFiles_QuotaCountsAcceptancesWithinBatch(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	for i := 0; i < MaxFilesPerRoom-2; i++ {
		seedFile(t, st, obj, room, fmt.Sprintf("f%d.txt", i), 100)
	}
	orch := NewUploadOrchestrator(st, obj)

	res, err := orch.UploadFiles(context.Background(), room, owner, []Candidate{
		candidate("a.txt", 100),
		candidate("b.txt", 100),
		candidate("c.txt", 100),
		candidate("d.txt", 100),
	})
	require.NoError(t, err)
	require.Len(t, res.Accepted, 2)
	assert.Equal(t, "a.txt", res.Accepted[0].Name)
	assert.Equal(t, "b.txt", res.Accepted[1].Name)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, Rejection{Name: "c.txt", Reason: ReasonQuotaExceeded}, res.Rejected[0])
	assert.Equal(t, Rejection{Name: "d.txt", Reason: ReasonQuotaExceeded}, res.Rejected[1])
}

func TestUploadFiles_NonOwnerRejectsAll(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	room := seedRoom(t, st, "team-x", "4321", uuid.New())
	orch := NewUploadOrchestrator(st, obj)

	res, err := orch.UploadFiles(context.Background(), room, uuid.New(), []Candidate{
		candidate("a.txt", 100),
		candidate("b.txt", 100),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	require.Len(t, res.Rejected, 2)
	for _, rej := range res.Rejected {
		assert.Equal(t, ReasonNotAuthorized, rej.Reason)
	}
	assert.Empty(t, res.Accepted)
	assert.Zero(t, obj.count(), "nothing may reach storage")
}

func TestUploadFiles_CompensatingDeleteOnRegistrationFailure(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	orch := NewUploadOrchestrator(st, obj)

	st.createFileErr = apperr.Upstream("failed to save file metadata", errors.New("insert failed"))
	res, err := orch.UploadFiles(context.Background(), room, owner, []Candidate{candidate("a.txt", 100)})
	require.NoError(t, err)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonRegistrationFailed, res.Rejected[0].Reason)
	assert.Zero(t, obj.count(), "stored blob must be compensated away")

	// Later candidates are still attempted once registration recovers.
	st.createFileErr = nil
	res, err = orch.UploadFiles(context.Background(), room, owner, []Candidate{candidate("b.txt", 100)})
	require.NoError(t, err)
	assert.Len(t, res.Accepted, 1)
}

func TestUploadFiles_StorageFailureDoesNotAbortBatch(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	orch := NewUploadOrchestrator(st, obj)

	obj.putErr = errors.New("bucket unavailable")
	res, err := orch.UploadFiles(context.Background(), room, owner, []Candidate{
		candidate("a.txt", 100),
		candidate("b.txt", 100),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Accepted)
	require.Len(t, res.Rejected, 2)
	for _, rej := range res.Rejected {
		assert.Equal(t, ReasonStorageFailed, rej.Reason)
	}
}

func TestUploadFiles_BlobPathsScopedToRoomKey(t *testing.T) {
	st := newFakeStore()
	obj := newFakeObjects()
	owner := uuid.New()
	room := seedRoom(t, st, "team-x", "4321", owner)
	orch := NewUploadOrchestrator(st, obj)

	res, err := orch.UploadFiles(context.Background(), room, owner, []Candidate{candidate("report.pdf", 100)})
	require.NoError(t, err)
	require.Len(t, res.Accepted, 1)
	assert.True(t, strings.HasPrefix(res.Accepted[0].URL, fakeBaseURL+"/team-x/"))

	paths, err := obj.List(context.Background(), "team-x/")
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}
