package storage

import (
	"context"

	"github.com/sakelabeler/sakelabeler/internal/models"
)

// RecordStore is the contract shared by the local and the remote backend.
// Implementations are sequential; callers await one operation at a time.
type RecordStore interface {
	// GetAll returns every record, newest-created first.
	GetAll(ctx context.Context) ([]models.Record, error)

	// GetByID returns a single record.
	// Returns ErrRecordNotFound if no record has this id.
	GetByID(ctx context.Context, id string) (*models.Record, error)

	// Create stores a new record, assigning a fresh id and timestamps,
	// and returns the stored record.
	Create(ctx context.Context, input models.RecordInput) (*models.Record, error)

	// Update merges the patch into an existing record. Fields absent from
	// the patch are left untouched. Returns ErrRecordNotFound if no record
	// has this id.
	Update(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error)

	// Delete removes a record together with its photo attachments.
	// Returns ErrRecordNotFound if no record has this id.
	Delete(ctx context.Context, id string) error
}
