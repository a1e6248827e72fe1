package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// GetAll returns every record, newest-created first.
func (s *Storage) GetAll(ctx context.Context) ([]models.Record, error) {
	var records []models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var rec models.Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to unmarshal record %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// GetByID returns a single record.
// Returns storage.ErrRecordNotFound if no record has this id.
func (s *Storage) GetByID(ctx context.Context, id string) (*models.Record, error) {
	var rec *models.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		rec = &models.Record{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Create stores a new record, assigning a fresh id and timestamps.
func (s *Storage) Create(ctx context.Context, input models.RecordInput) (*models.Record, error) {
	now := time.Now().UTC()
	rec := &models.Record{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Photos:       models.NormalizePhotos(input.Photos),
		AlcoholType:  input.AlcoholType,
		Tags:         input.Tags,
		Restaurant:   input.Restaurant,
		Origin:       input.Origin,
		Location:     input.Location,
		LocationText: input.LocationText,
		Date:         input.Date,
		Rating:       input.Rating,
		Memo:         input.Memo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if rec.Photos == nil {
		rec.Photos = []models.Photo{}
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}
		return putRecord(bucket, rec)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Update merges the patch into an existing record. Fields absent from the
// patch keep their current values.
// Returns storage.ErrRecordNotFound if no record has this id.
func (s *Storage) Update(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	var rec *models.Record

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrRecordNotFound
		}

		rec = &models.Record{}
		if err := json.Unmarshal(data, rec); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		patch.Apply(rec)
		rec.UpdatedAt = time.Now().UTC()

		return putRecord(bucket, rec)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Delete removes a record and its photo attachments (stored inline).
// Returns storage.ErrRecordNotFound if no record has this id.
func (s *Storage) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecords)
		if bucket == nil {
			return fmt.Errorf("records bucket not found")
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrRecordNotFound
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		return nil
	})
}

// putRecord serializes rec and stores it under its id.
func putRecord(bucket *bbolt.Bucket, rec *models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := bucket.Put([]byte(rec.ID), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}
