// Package migrate moves locally stored records to the remote backend after
// the user signs in for the first time.
package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
	"github.com/sakelabeler/sakelabeler/internal/validation"
)

// RemoteStore is the destination of a migration. Probe verifies backend
// reachability and session validity before any record is transferred.
type RemoteStore interface {
	storage.RecordStore
	Probe(ctx context.Context) error
}

// Progress is called after each record transfer with the number of records
// done so far and the total.
type Progress func(done, total int)

// Result summarizes a completed migration.
type Result struct {
	Migrated int
	Total    int
}

// PreconditionError reports a failed pre-transfer check. No records have
// been touched when it is returned.
type PreconditionError struct {
	Check string
	Err   error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("migration precondition %q failed: %v", e.Check, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// TransferError reports a failed record transfer. Records before Index were
// uploaded; the local copies of all records are untouched.
type TransferError struct {
	Index    int
	RecordID string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("failed to transfer record %s (%d): %v", e.RecordID, e.Index, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// Service transfers all local records to the remote store and, only after
// every transfer succeeded, deletes the local copies.
type Service struct {
	local  storage.RecordStore
	remote RemoteStore
}

// NewService creates a migration service.
func NewService(local storage.RecordStore, remote RemoteStore) *Service {
	return &Service{local: local, remote: remote}
}

// Run executes the migration. Records are transferred one at a time, in
// local listing order, halting on the first failure so a partial run leaves
// the local store complete. Local deletion failures after a full transfer
// are logged and swallowed: the data is safe remotely, stale local copies
// are cosmetic.
func (s *Service) Run(ctx context.Context, progress Progress) (*Result, error) {
	records, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, &PreconditionError{Check: "read local records", Err: err}
	}
	if len(records) == 0 {
		return &Result{}, nil
	}

	if err := s.remote.Probe(ctx); err != nil {
		return nil, &PreconditionError{Check: "probe backend", Err: err}
	}
	for i, rec := range records {
		if err := validation.ValidatePhotos(rec.Photos); err != nil {
			return nil, &PreconditionError{
				Check: "validate photos",
				Err:   fmt.Errorf("record %s (%d): %w", rec.ID, i, err),
			}
		}
	}

	total := len(records)
	for i, rec := range records {
		if _, err := s.remote.Create(ctx, rec.Input()); err != nil {
			return &Result{Migrated: i, Total: total}, &TransferError{
				Index:    i,
				RecordID: rec.ID,
				Err:      err,
			}
		}
		if progress != nil {
			progress(i+1, total)
		}
	}

	s.deleteLocal(ctx, records)

	return &Result{Migrated: total, Total: total}, nil
}

// deleteLocal removes the transferred records from the local store. Runs
// only after every record is safely remote.
func (s *Service) deleteLocal(ctx context.Context, records []models.Record) {
	for _, rec := range records {
		if err := s.local.Delete(ctx, rec.ID); err != nil {
			slog.Warn("failed to delete migrated record locally",
				"record_id", rec.ID, "error", err)
		}
	}
}
