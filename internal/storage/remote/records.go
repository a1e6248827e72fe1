package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// recordRow is the scalar part of a record, one row per record.
type recordRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	OwnerID      string    `gorm:"column:owner_id"`
	Name         string    `gorm:"column:name"`
	AlcoholType  string    `gorm:"column:alcohol_type"`
	Tags         string    `gorm:"column:tags"` // JSON-encoded list
	Restaurant   string    `gorm:"column:restaurant"`
	Origin       string    `gorm:"column:origin"`
	LocationLat  *float64  `gorm:"column:location_lat"`
	LocationLng  *float64  `gorm:"column:location_lng"`
	LocationText *string   `gorm:"column:location_text"`
	Date         string    `gorm:"column:date"`
	Rating       int       `gorm:"column:rating"`
	Memo         string    `gorm:"column:memo"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (recordRow) TableName() string { return "sake_records" }

// GetAll returns the scoped owner's records, newest-created first, each with
// its photo list sorted by stored sort order.
func (s *Store) GetAll(ctx context.Context) ([]models.Record, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	var rows []recordRow
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	if len(rows) == 0 {
		return []models.Record{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var photoRows []photoRow
	if err := s.db.WithContext(ctx).
		Where("record_id IN ?", ids).
		Order("sort_order ASC").
		Find(&photoRows).Error; err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}

	photosByRecord := make(map[string][]photoRow)
	for _, p := range photoRows {
		photosByRecord[p.RecordID] = append(photosByRecord[p.RecordID], p)
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := s.toRecord(row, photosByRecord[row.ID])
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// GetByID returns a single record of the scoped owner.
// Returns storage.ErrRecordNotFound if no record has this id.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Record, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	var row recordRow
	err = s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	var photoRows []photoRow
	if err := s.db.WithContext(ctx).
		Where("record_id = ?", id).
		Order("sort_order ASC").
		Find(&photoRows).Error; err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}

	return s.toRecord(row, photoRows)
}

// Create inserts the record row first, then uploads each photo and inserts
// a matching photo row. The fully assembled record is read back afterwards.
func (s *Store) Create(ctx context.Context, input models.RecordInput) (*models.Record, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := recordRow{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Name:        input.Name,
		AlcoholType: string(input.AlcoholType),
		Tags:        encodeTags(input.Tags),
		Restaurant:  input.Restaurant,
		Origin:      input.Origin,
		Date:        input.Date,
		Rating:      input.Rating,
		Memo:        input.Memo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Location != nil {
		row.LocationLat = &input.Location.Lat
		row.LocationLng = &input.Location.Lng
	}
	if input.LocationText != "" {
		row.LocationText = &input.LocationText
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	// Photos go up one at a time, in list order, to keep sort order stable.
	for i, p := range models.NormalizePhotos(input.Photos) {
		if err := s.insertPhoto(ctx, owner, row.ID, p, i, now); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, row.ID)
}

// Update patches scalar fields that are present in the patch and, when a
// photo list is provided, reconciles stored photos against it.
// Returns storage.ErrRecordNotFound if no record has this id.
func (s *Store) Update(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	var existing recordRow
	err = s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query record: %w", err)
	}

	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.AlcoholType != nil {
		updates["alcohol_type"] = string(*patch.AlcoholType)
	}
	if patch.Tags != nil {
		updates["tags"] = encodeTags(patch.Tags)
	}
	if patch.Restaurant != nil {
		updates["restaurant"] = *patch.Restaurant
	}
	if patch.Origin != nil {
		updates["origin"] = *patch.Origin
	}
	if patch.SetLocation {
		if patch.Location != nil {
			updates["location_lat"] = patch.Location.Lat
			updates["location_lng"] = patch.Location.Lng
		} else {
			updates["location_lat"] = nil
			updates["location_lng"] = nil
		}
	}
	if patch.LocationText != nil {
		if *patch.LocationText == "" {
			updates["location_text"] = nil
		} else {
			updates["location_text"] = *patch.LocationText
		}
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.Memo != nil {
		updates["memo"] = *patch.Memo
	}

	if len(updates) > 0 || patch.Photos != nil {
		updates["updated_at"] = time.Now().UTC()
		if err := s.db.WithContext(ctx).Model(&recordRow{}).
			Where("id = ? AND owner_id = ?", id, owner).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update record: %w", err)
		}
	}

	if patch.Photos != nil {
		if err := s.syncPhotos(ctx, owner, id, models.NormalizePhotos(patch.Photos)); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the record's photo binaries from object storage, then the
// record row; the photo rows go with it.
// Returns storage.ErrRecordNotFound if no record has this id.
func (s *Store) Delete(ctx context.Context, id string) error {
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	var photoRows []photoRow
	if err := s.db.WithContext(ctx).
		Where("record_id = ? AND owner_id = ?", id, owner).
		Find(&photoRows).Error; err != nil {
		return fmt.Errorf("failed to query photos: %w", err)
	}
	if len(photoRows) > 0 {
		paths := make([]string, 0, len(photoRows))
		for _, p := range photoRows {
			paths = append(paths, p.StoragePath)
		}
		if err := s.blobs.Remove(ctx, paths...); err != nil {
			return fmt.Errorf("failed to remove photo objects: %w", err)
		}
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		Delete(&recordRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrRecordNotFound
	}

	// The schema cascades photo rows on record deletion; sweep explicitly
	// for engines running without foreign-key enforcement.
	if err := s.db.WithContext(ctx).
		Where("record_id = ?", id).
		Delete(&photoRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete photo rows: %w", err)
	}
	return nil
}

// toRecord assembles a record from its row and photo rows. Photo rows are
// expected in sort order.
func (s *Store) toRecord(row recordRow, photoRows []photoRow) (*models.Record, error) {
	tags, err := decodeTags(row.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tags of record %s: %w", row.ID, err)
	}

	photos := make([]models.Photo, 0, len(photoRows))
	for _, p := range photoRows {
		photo := models.Photo{
			URL:     s.blobs.PublicURL(p.StoragePath),
			IsCover: p.IsCover,
		}
		if p.GPSLat != nil && p.GPSLng != nil {
			photo.GPS = &models.Location{Lat: *p.GPSLat, Lng: *p.GPSLng}
		}
		photos = append(photos, photo)
	}

	rec := &models.Record{
		ID:          row.ID,
		Name:        row.Name,
		Photos:      photos,
		AlcoholType: models.AlcoholType(row.AlcoholType),
		Tags:        tags,
		Restaurant:  row.Restaurant,
		Origin:      row.Origin,
		Date:        row.Date,
		Rating:      row.Rating,
		Memo:        row.Memo,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.LocationLat != nil && row.LocationLng != nil {
		rec.Location = &models.Location{Lat: *row.LocationLat, Lng: *row.LocationLng}
	}
	if row.LocationText != nil {
		rec.LocationText = *row.LocationText
	}
	return rec, nil
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
