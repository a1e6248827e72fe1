package migrate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// fakeLocal is an in-memory RecordStore tracking deletions.
type fakeLocal struct {
	records   []models.Record
	deleted   []string
	deleteErr error
}

func (f *fakeLocal) GetAll(ctx context.Context) ([]models.Record, error) {
	return f.records, nil
}

func (f *fakeLocal) GetByID(ctx context.Context, id string) (*models.Record, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, storage.ErrRecordNotFound
}

func (f *fakeLocal) Create(ctx context.Context, input models.RecordInput) (*models.Record, error) {
	return nil, errors.New("not used")
}

func (f *fakeLocal) Update(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	return nil, errors.New("not used")
}

func (f *fakeLocal) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeRemote records created inputs and can fail the probe or a specific
// transfer.
type fakeRemote struct {
	created  []models.RecordInput
	probeErr error
	failAt   int // index whose Create fails; -1 for none
}

func (f *fakeRemote) Probe(ctx context.Context) error { return f.probeErr }

func (f *fakeRemote) GetAll(ctx context.Context) ([]models.Record, error) { return nil, nil }

func (f *fakeRemote) GetByID(ctx context.Context, id string) (*models.Record, error) {
	return nil, storage.ErrRecordNotFound
}

func (f *fakeRemote) Create(ctx context.Context, input models.RecordInput) (*models.Record, error) {
	if f.failAt >= 0 && len(f.created) == f.failAt {
		return nil, errors.New("backend unavailable")
	}
	f.created = append(f.created, input)
	return &models.Record{ID: fmt.Sprintf("remote-%d", len(f.created))}, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error { return nil }

func localRecords(n int) []models.Record {
	records := make([]models.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.Record{
			ID:     fmt.Sprintf("rec-%d", i),
			Name:   fmt.Sprintf("Sake %d", i),
			Photos: []models.Photo{{URL: "data:image/jpeg;base64,aa", IsCover: true}},
		})
	}
	return records
}

func TestRunMigratesAllAndDeletesLocal(t *testing.T) {
	local := &fakeLocal{records: localRecords(3)}
	remote := &fakeRemote{failAt: -1}

	var progress [][2]int
	result, err := NewService(local, remote).Run(context.Background(), func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Equal(t, &Result{Migrated: 3, Total: 3}, result)

	require.Len(t, remote.created, 3)
	assert.Equal(t, "Sake 0", remote.created[0].Name)

	// Local copies go only after the full transfer.
	assert.Equal(t, []string{"rec-0", "rec-1", "rec-2"}, local.deleted)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
}

func TestRunEmptyLocalIsNoop(t *testing.T) {
	local := &fakeLocal{}
	remote := &fakeRemote{failAt: -1, probeErr: errors.New("unreachable")}

	// With nothing to migrate the backend is never probed.
	result, err := NewService(local, remote).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, result)
}

func TestRunProbeFailure(t *testing.T) {
	local := &fakeLocal{records: localRecords(2)}
	remote := &fakeRemote{failAt: -1, probeErr: errors.New("unreachable")}

	_, err := NewService(local, remote).Run(context.Background(), nil)

	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, "probe backend", preErr.Check)

	assert.Empty(t, remote.created)
	assert.Empty(t, local.deleted)
}

func TestRunInvalidPhotosFailPreconditions(t *testing.T) {
	records := localRecords(2)
	records[1].Photos = []models.Photo{
		{URL: "a", IsCover: true},
		{URL: "b", IsCover: true},
	}
	local := &fakeLocal{records: records}
	remote := &fakeRemote{failAt: -1}

	_, err := NewService(local, remote).Run(context.Background(), nil)

	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Equal(t, "validate photos", preErr.Check)
	assert.Empty(t, remote.created)
}

func TestRunHaltsOnFirstTransferFailure(t *testing.T) {
	local := &fakeLocal{records: localRecords(4)}
	remote := &fakeRemote{failAt: 2}

	result, err := NewService(local, remote).Run(context.Background(), nil)

	var transferErr *TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, 2, transferErr.Index)
	assert.Equal(t, "rec-2", transferErr.RecordID)

	// Records before the failure were uploaded, nothing was deleted locally.
	assert.Len(t, remote.created, 2)
	assert.Empty(t, local.deleted)
	assert.Equal(t, &Result{Migrated: 2, Total: 4}, result)
}

func TestRunSwallowsLocalDeleteFailures(t *testing.T) {
	local := &fakeLocal{records: localRecords(2), deleteErr: errors.New("db locked")}
	remote := &fakeRemote{failAt: -1}

	result, err := NewService(local, remote).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &Result{Migrated: 2, Total: 2}, result)
	assert.Len(t, remote.created, 2)
}
