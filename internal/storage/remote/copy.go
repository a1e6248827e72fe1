package remote

import (
	"context"
	"fmt"

	"github.com/sakelabeler/sakelabeler/internal/imaging"
	"github.com/sakelabeler/sakelabeler/internal/models"
)

// CopyRecord duplicates a record from this store's scope into targetOwner's
// dataset. Stored photos are downloaded and re-embedded as inline data, so
// the copy gets its own objects under the target owner's storage path and
// stays intact if the source record is later deleted. An empty targetOwner
// copies into the caller's own records.
func (s *Store) CopyRecord(ctx context.Context, id, targetOwner string) (*models.Record, error) {
	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input := rec.Input()
	photos := make([]models.Photo, 0, len(rec.Photos))
	for _, p := range rec.Photos {
		if !p.IsInline() {
			path, ok := s.blobs.Path(p.URL)
			if !ok {
				return nil, fmt.Errorf("photo %s is not held in this store", p.URL)
			}
			data, err := s.blobs.Get(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("failed to download photo: %w", err)
			}
			p.URL = imaging.EncodeDataURL(data, "image/jpeg")
		}
		photos = append(photos, p)
	}
	input.Photos = photos

	return s.ForOwner(targetOwner).Create(ctx, input)
}
