package selector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// stubStore is a RecordStore marker; operations are never called here.
type stubStore struct {
	name string
}

func (s *stubStore) GetAll(ctx context.Context) ([]models.Record, error) { return nil, nil }
func (s *stubStore) GetByID(ctx context.Context, id string) (*models.Record, error) {
	return nil, storage.ErrRecordNotFound
}
func (s *stubStore) Create(ctx context.Context, input models.RecordInput) (*models.Record, error) {
	return nil, errors.New("not used")
}
func (s *stubStore) Update(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	return nil, errors.New("not used")
}
func (s *stubStore) Delete(ctx context.Context, id string) error { return nil }

type stubAuth struct {
	authenticated bool
}

func (s stubAuth) IsAuthenticated(ctx context.Context) bool { return s.authenticated }

// memSettings keeps the viewing context in memory.
type memSettings struct {
	vc storage.ViewingContext
}

func (m *memSettings) SaveViewingContext(ctx context.Context, vc storage.ViewingContext) error {
	m.vc = vc
	return nil
}

func (m *memSettings) GetViewingContext(ctx context.Context) (storage.ViewingContext, error) {
	return m.vc, nil
}

// newTestSelector wires a selector whose sharing registry contains one
// received share per listed owner.
func newTestSelector(authenticated bool, sharingOwners ...string) (*Selector, *stubStore, *memSettings) {
	local := &stubStore{name: "local"}
	settings := &memSettings{}
	remote := func(ctx context.Context, ownerID string) (storage.RecordStore, error) {
		return &stubStore{name: "remote:" + ownerID}, nil
	}
	shares := func(ctx context.Context) ([]models.Share, error) {
		received := make([]models.Share, 0, len(sharingOwners))
		for _, owner := range sharingOwners {
			received = append(received, models.Share{ID: "share-" + owner, OwnerID: owner, InviteeID: "me"})
		}
		return received, nil
	}
	return New(local, remote, shares, stubAuth{authenticated: authenticated}, settings), local, settings
}

func TestActiveSignedOut(t *testing.T) {
	sel, local, settings := newTestSelector(false)

	// Even a persisted shared context is ignored while signed out.
	settings.vc = storage.ViewingContext{OwnerID: "alice"}

	store, vc, err := sel.Active(context.Background())
	require.NoError(t, err)
	assert.Same(t, local, store)
	assert.False(t, vc.Shared())
}

func TestActiveSignedInOwnData(t *testing.T) {
	sel, _, _ := newTestSelector(true)

	store, vc, err := sel.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "remote:", store.(*stubStore).name)
	assert.False(t, vc.Shared())
}

func TestActiveSignedInSharedData(t *testing.T) {
	sel, _, settings := newTestSelector(true, "alice")
	ctx := context.Background()

	require.NoError(t, sel.UseShared(ctx, "alice"))
	assert.Equal(t, "alice", settings.vc.OwnerID)

	store, vc, err := sel.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, "remote:alice", store.(*stubStore).name)
	assert.True(t, vc.Shared())
	assert.Equal(t, "alice", vc.OwnerID)
}

func TestUseOwnResetsContext(t *testing.T) {
	sel, _, settings := newTestSelector(true, "alice")
	ctx := context.Background()

	require.NoError(t, sel.UseShared(ctx, "alice"))
	require.NoError(t, sel.UseOwn(ctx))
	assert.False(t, settings.vc.Shared())
}

func TestUseSharedRequiresAuth(t *testing.T) {
	sel, _, settings := newTestSelector(false, "alice")

	err := sel.UseShared(context.Background(), "alice")
	assert.ErrorIs(t, err, storage.ErrNotAuthenticated)
	assert.False(t, settings.vc.Shared())
}

func TestUseSharedRequiresReceivedShare(t *testing.T) {
	sel, _, settings := newTestSelector(true, "alice")
	ctx := context.Background()

	// No share from this owner: the switch is refused and the persisted
	// context stays untouched.
	err := sel.UseShared(ctx, "stranger")
	assert.ErrorIs(t, err, storage.ErrNotShared)
	assert.False(t, settings.vc.Shared())

	require.NoError(t, sel.UseShared(ctx, "alice"))
	err = sel.UseShared(ctx, "stranger")
	assert.ErrorIs(t, err, storage.ErrNotShared)
	assert.Equal(t, "alice", settings.vc.OwnerID)
}

func TestUseSharedRegistryFailure(t *testing.T) {
	local := &stubStore{}
	settings := &memSettings{}
	remote := func(ctx context.Context, ownerID string) (storage.RecordStore, error) {
		return &stubStore{}, nil
	}
	shares := func(ctx context.Context) ([]models.Share, error) {
		return nil, errors.New("backend unreachable")
	}
	sel := New(local, remote, shares, stubAuth{authenticated: true}, settings)

	err := sel.UseShared(context.Background(), "alice")
	require.Error(t, err)
	assert.False(t, settings.vc.Shared())
}

func TestRemoteFactoryFailure(t *testing.T) {
	local := &stubStore{}
	settings := &memSettings{}
	remote := func(ctx context.Context, ownerID string) (storage.RecordStore, error) {
		return nil, errors.New("not configured")
	}
	shares := func(ctx context.Context) ([]models.Share, error) {
		return nil, nil
	}
	sel := New(local, remote, shares, stubAuth{authenticated: true}, settings)

	_, _, err := sel.Active(context.Background())
	assert.Error(t, err)
}
