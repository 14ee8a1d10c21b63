package jobs

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/adeel/roomshare-backend/models"
	"github.com/adeel/roomshare-backend/rooms"
	"github.com/adeel/roomshare-backend/storage"
)

// StartOrphanSweeper periodically reconciles the object store against the
// file records. Best-effort compensation during uploads and deletes can
// leave orphaned blobs behind; the sweeper bounds that cost.
func StartOrphanSweeper(db *gorm.DB, objects storage.ObjectStore) {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			sweepOrphanedBlobs(db, objects)
		}
	}()
}

// recentlyStored reports whether a blob was put within the last hour, going
// by the millisecond timestamp in its path. Such blobs may belong to an
// upload whose registration has not landed yet, so the sweeper leaves them
// alone; unparseable paths are also left alone.
func recentlyStored(path string) bool {
	base := path
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	i := strings.Index(base, "-")
	if i < 0 {
		return true
	}
	millis, err := strconv.ParseInt(base[:i], 10, 64)
	if err != nil {
		return true
	}
	return time.Since(time.UnixMilli(millis)) < time.Hour
}

func sweepOrphanedBlobs(db *gorm.DB, objects storage.ObjectStore) {
	ctx := context.Background()

	var roomList []models.Room
	if err := db.Find(&roomList).Error; err != nil {
		log.Printf("sweeper: listing rooms failed: %v", err)
		return
	}

	for _, room := range roomList {
		stored, err := objects.List(ctx, room.Key+"/")
		if err != nil {
			log.Printf("sweeper: listing blobs for room %s failed: %v", room.Key, err)
			continue
		}
		if len(stored) == 0 {
			continue
		}

		var files []models.FileRecord
		if err := db.Where("room_id = ?", room.ID).Find(&files).Error; err != nil {
			log.Printf("sweeper: listing files for room %s failed: %v", room.Key, err)
			continue
		}

		referenced := make(map[string]bool, len(files))
		for _, f := range files {
			path, err := rooms.StoragePathFromURL(f.URL)
			if err != nil {
				log.Printf("sweeper: bad file url on record %s: %v", f.ID, err)
				continue
			}
			referenced[path] = true
		}

		var orphans []string
		for _, path := range stored {
			if !referenced[path] && !recentlyStored(path) {
				orphans = append(orphans, path)
			}
		}
		if len(orphans) == 0 {
			continue
		}

		if err := objects.Remove(ctx, orphans); err != nil {
			log.Printf("sweeper: removing %d orphaned blobs in room %s failed: %v", len(orphans), room.Key, err)
			continue
		}
		log.Printf("sweeper: removed %d orphaned blobs in room %s", len(orphans), room.Key)
	}
}
