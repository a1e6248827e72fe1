package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sakelabeler/sakelabeler/internal/imaging"
	"github.com/sakelabeler/sakelabeler/internal/models"
)

// photoRow is one photo attachment, one row per photo. The image bytes live
// in object storage under StoragePath.
type photoRow struct {
	ID          string    `gorm:"column:id;primaryKey"`
	RecordID    string    `gorm:"column:record_id"`
	OwnerID     string    `gorm:"column:owner_id"`
	StoragePath string    `gorm:"column:storage_path"`
	IsCover     bool      `gorm:"column:is_cover"`
	GPSLat      *float64  `gorm:"column:gps_lat"`
	GPSLng      *float64  `gorm:"column:gps_lng"`
	SortOrder   int       `gorm:"column:sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (photoRow) TableName() string { return "sake_photos" }

// insertPhoto uploads an inline photo to object storage under a path keyed
// by owner/record/photo ids and inserts the matching photo row. Photos that
// already reference a stored object keep their row only.
func (s *Store) insertPhoto(ctx context.Context, owner, recordID string, p models.Photo, sortOrder int, now time.Time) error {
	photoID := uuid.NewString()
	path := fmt.Sprintf("%s/%s/%s.jpg", owner, recordID, photoID)

	if p.IsInline() {
		data, mime, err := imaging.DecodeDataURL(p.URL)
		if err != nil {
			return fmt.Errorf("failed to decode photo data: %w", err)
		}
		if err := s.blobs.Put(ctx, path, data, mime); err != nil {
			return fmt.Errorf("failed to upload photo: %w", err)
		}
	}

	row := photoRow{
		ID:          photoID,
		RecordID:    recordID,
		OwnerID:     owner,
		StoragePath: path,
		IsCover:     p.IsCover,
		SortOrder:   sortOrder,
		CreatedAt:   now,
	}
	if p.GPS != nil {
		row.GPSLat = &p.GPS.Lat
		row.GPSLng = &p.GPS.Lng
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert photo row: %w", err)
	}
	return nil
}

// syncPhotos reconciles the stored photos of a record against the new list.
// Stored photos are matched by resolved display URL: unmatched stored photos
// are deleted from object storage and the photo table, inline entries are
// uploaded as new photos, and matched entries get their cover flag, sort
// order and GPS coordinate updated in place.
func (s *Store) syncPhotos(ctx context.Context, owner, recordID string, photos []models.Photo) error {
	var oldRows []photoRow
	if err := s.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Find(&oldRows).Error; err != nil {
		return fmt.Errorf("failed to query photos: %w", err)
	}

	newURLs := make(map[string]bool, len(photos))
	for _, p := range photos {
		newURLs[p.URL] = true
	}

	var removedIDs, removedPaths []string
	for _, old := range oldRows {
		if !newURLs[s.blobs.PublicURL(old.StoragePath)] {
			removedIDs = append(removedIDs, old.ID)
			removedPaths = append(removedPaths, old.StoragePath)
		}
	}
	if len(removedIDs) > 0 {
		if err := s.blobs.Remove(ctx, removedPaths...); err != nil {
			return fmt.Errorf("failed to remove photo objects: %w", err)
		}
		if err := s.db.WithContext(ctx).
			Where("id IN ?", removedIDs).
			Delete(&photoRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete photo rows: %w", err)
		}
	}

	now := time.Now().UTC()
	for i, p := range photos {
		if p.IsInline() {
			if err := s.insertPhoto(ctx, owner, recordID, p, i, now); err != nil {
				return err
			}
			continue
		}

		path, ok := s.blobs.Path(p.URL)
		if !ok {
			// Not a URL of this store; nothing to update.
			continue
		}

		updates := map[string]any{
			"is_cover":   p.IsCover,
			"sort_order": i,
		}
		if p.GPS != nil {
			updates["gps_lat"] = p.GPS.Lat
			updates["gps_lng"] = p.GPS.Lng
		} else {
			updates["gps_lat"] = nil
			updates["gps_lng"] = nil
		}

		if err := s.db.WithContext(ctx).Model(&photoRow{}).
			Where("record_id = ? AND storage_path = ?", recordID, path).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update photo row: %w", err)
		}
	}
	return nil
}
