package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/sakelabeler/sakelabeler/internal/storage"
)

var keyViewingContext = []byte("viewing_context")

// SaveViewingContext stores the viewing context so the last-chosen context
// survives a restart. The own-data context is stored as an empty value.
func (s *Storage) SaveViewingContext(ctx context.Context, vc storage.ViewingContext) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		if err := bucket.Put(keyViewingContext, []byte(vc.OwnerID)); err != nil {
			return fmt.Errorf("failed to save viewing context: %w", err)
		}
		return nil
	})
}

// GetViewingContext returns the stored viewing context, or the zero
// ("own data") context when none was saved yet.
func (s *Storage) GetViewingContext(ctx context.Context) (storage.ViewingContext, error) {
	var vc storage.ViewingContext

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSettings)
		if bucket == nil {
			return fmt.Errorf("settings bucket not found")
		}

		vc.OwnerID = string(bucket.Get(keyViewingContext))
		return nil
	})
	if err != nil {
		return storage.ViewingContext{}, err
	}

	return vc, nil
}
