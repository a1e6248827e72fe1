package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakelabeler/sakelabeler/internal/blob/memory"
	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

func TestCopyRecordIntoSharedDataset(t *testing.T) {
	db := newTestDB(t)
	blobs := memory.New("https://cdn.test/photos/")

	alice := New(db, blobs, staticIdentity{id: "alice"})
	bob := New(db, blobs, staticIdentity{id: "bob"})
	ctx := context.Background()

	photo := inlinePhoto("label", true)
	photo.GPS = &models.Location{Lat: 35.0, Lng: 139.0}
	created, err := alice.Create(ctx, models.RecordInput{
		Name:        "Juyondai",
		AlcoholType: models.AlcoholNihonshu,
		Tags:        []string{"芳醇"},
		Rating:      5,
		Photos:      []models.Photo{photo, inlinePhoto("back", false)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, blobs.Len())

	copied, err := alice.CopyRecord(ctx, created.ID, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, copied.ID)
	assert.Equal(t, "Juyondai", copied.Name)
	assert.Equal(t, []string{"芳醇"}, copied.Tags)
	assert.Equal(t, 5, copied.Rating)

	// The copy gets fresh objects under the target owner's path; GPS and
	// cover flag survive.
	require.Len(t, copied.Photos, 2)
	for _, p := range copied.Photos {
		assert.Contains(t, p.URL, "bob/"+copied.ID+"/")
	}
	assert.True(t, copied.Photos[0].IsCover)
	require.NotNil(t, copied.Photos[0].GPS)
	assert.Equal(t, 35.0, copied.Photos[0].GPS.Lat)
	assert.Equal(t, 4, blobs.Len())

	// The copy lives in bob's dataset and carries the same image bytes.
	got, err := bob.GetByID(ctx, copied.ID)
	require.NoError(t, err)
	path, ok := blobs.Path(got.Photos[0].URL)
	require.True(t, ok)
	data, err := blobs.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("label"), data)

	// The original stays untouched in alice's dataset.
	_, err = alice.GetByID(ctx, created.ID)
	require.NoError(t, err)
}

func TestCopyRecordFromSharedView(t *testing.T) {
	db := newTestDB(t)
	blobs := memory.New("https://cdn.test/photos/")

	alice := New(db, blobs, staticIdentity{id: "alice"})
	bob := New(db, blobs, staticIdentity{id: "bob"})
	ctx := context.Background()

	created, err := alice.Create(ctx, models.RecordInput{
		Name:   "Denshu",
		Photos: []models.Photo{inlinePhoto("front", true)},
	})
	require.NoError(t, err)

	// Viewing alice's shared dataset, bob copies a record into his own.
	copied, err := bob.ForOwner("alice").CopyRecord(ctx, created.ID, "")
	require.NoError(t, err)

	got, err := bob.GetByID(ctx, copied.ID)
	require.NoError(t, err)
	assert.Equal(t, "Denshu", got.Name)
	require.Len(t, got.Photos, 1)
	assert.Contains(t, got.Photos[0].URL, "bob/"+copied.ID+"/")
}

func TestCopyRecordNotFound(t *testing.T) {
	s, _ := newTestStore(t, "user-1")

	_, err := s.CopyRecord(context.Background(), "missing", "bob")
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}
