package remote

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sakelabeler/sakelabeler/internal/blob/memory"
	"github.com/sakelabeler/sakelabeler/internal/imaging"
	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// staticIdentity resolves a fixed user id, or an auth error when empty.
type staticIdentity struct {
	id string
}

func (s staticIdentity) UserID(ctx context.Context) (string, error) {
	if s.id == "" {
		return "", storage.ErrNotAuthenticated
	}
	return s.id, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	return db
}

func newTestStore(t *testing.T, userID string) (*Store, *memory.Store) {
	t.Helper()

	blobs := memory.New("https://cdn.test/photos/")
	return New(newTestDB(t), blobs, staticIdentity{id: userID}), blobs
}

func inlinePhoto(payload string, cover bool) models.Photo {
	return models.Photo{
		URL:     imaging.EncodeDataURL([]byte(payload), "image/jpeg"),
		IsCover: cover,
	}
}

func TestCreateUploadsInlinePhotos(t *testing.T) {
	s, blobs := newTestStore(t, "user-1")
	ctx := context.Background()

	created, err := s.Create(ctx, models.RecordInput{
		Name:        "Dassai 39",
		AlcoholType: models.AlcoholNihonshu,
		Tags:        []string{"純米大吟醸"},
		Rating:      4,
		Photos: []models.Photo{
			inlinePhoto("front", false),
			inlinePhoto("back", false),
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 2, blobs.Len())

	// Photos come back as resolved URLs keyed owner/record/photo.
	require.Len(t, created.Photos, 2)
	for _, p := range created.Photos {
		assert.False(t, p.IsInline())
		assert.Contains(t, p.URL, "user-1/"+created.ID+"/")
		assert.True(t, strings.HasSuffix(p.URL, ".jpg"))
	}
	assert.True(t, created.Photos[0].IsCover)
	assert.False(t, created.Photos[1].IsCover)
}

func TestCreateKeepsLocation(t *testing.T) {
	s, _ := newTestStore(t, "user-1")
	ctx := context.Background()

	created, err := s.Create(ctx, models.RecordInput{
		Name:         "Zaku",
		Location:     &models.Location{Lat: 34.7, Lng: 136.5},
		LocationText: "Suzuka, Mie",
	})
	require.NoError(t, err)
	require.NotNil(t, created.Location)
	assert.Equal(t, 34.7, created.Location.Lat)
	assert.Equal(t, "Suzuka, Mie", created.LocationText)
}

func TestGetAllSortsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t, "user-1")
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		rec, err := s.Create(ctx, models.RecordInput{Name: name})
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		time.Sleep(2 * time.Millisecond)
	}

	records, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[0], records[2].ID)
}

func TestOwnerIsolation(t *testing.T) {
	db := newTestDB(t)
	blobs := memory.New("https://cdn.test/photos/")

	alice := New(db, blobs, staticIdentity{id: "alice"})
	bob := New(db, blobs, staticIdentity{id: "bob"})
	ctx := context.Background()

	created, err := alice.Create(ctx, models.RecordInput{Name: "Juyondai"})
	require.NoError(t, err)

	records, err := bob.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = bob.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	// Scoped to alice's dataset, bob sees her records.
	sharedView := bob.ForOwner("alice")
	records, err = sharedView.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.ID, records[0].ID)
}

func TestUnauthenticated(t *testing.T) {
	s, _ := newTestStore(t, "")
	ctx := context.Background()

	_, err := s.GetAll(ctx)
	assert.ErrorIs(t, err, storage.ErrNotAuthenticated)

	_, err = s.Create(ctx, models.RecordInput{Name: "x"})
	assert.ErrorIs(t, err, storage.ErrNotAuthenticated)

	assert.ErrorIs(t, s.Probe(ctx), storage.ErrNotAuthenticated)
}

func TestUpdateScalars(t *testing.T) {
	s, _ := newTestStore(t, "user-1")
	ctx := context.Background()

	created, err := s.Create(ctx, models.RecordInput{
		Name:         "Kubota",
		Rating:       3,
		Location:     &models.Location{Lat: 37.0, Lng: 138.0},
		LocationText: "Niigata",
	})
	require.NoError(t, err)

	name := "Kubota Manju"
	rating := 5
	updated, err := s.Update(ctx, created.ID, models.RecordPatch{
		Name:   &name,
		Rating: &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kubota Manju", updated.Name)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Niigata", updated.LocationText)

	// Clearing the coordinate and the place name.
	empty := ""
	updated, err = s.Update(ctx, created.ID, models.RecordPatch{
		SetLocation:  true,
		LocationText: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Location)
	assert.Equal(t, "", updated.LocationText)
}

func TestUpdatePhotoDiff(t *testing.T) {
	s, blobs := newTestStore(t, "user-1")
	ctx := context.Background()

	created, err := s.Create(ctx, models.RecordInput{
		Name: "Zaku",
		Photos: []models.Photo{
			inlinePhoto("front", true),
			inlinePhoto("back", false),
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Photos, 2)
	require.Equal(t, 2, blobs.Len())

	kept := created.Photos[1]
	kept.IsCover = true

	// Drop the old cover, keep the second photo as new cover, add one photo.
	updated, err := s.Update(ctx, created.ID, models.RecordPatch{
		Photos: []models.Photo{kept, inlinePhoto("label", false)},
	})
	require.NoError(t, err)
	require.Len(t, updated.Photos, 2)

	// The removed photo's object is gone, two remain.
	assert.Equal(t, 2, blobs.Len())
	removedPath, ok := blobs.Path(created.Photos[0].URL)
	require.True(t, ok)
	assert.False(t, blobs.Exists(removedPath))

	assert.Equal(t, kept.URL, updated.Photos[0].URL)
	assert.True(t, updated.Photos[0].IsCover)
	assert.False(t, updated.Photos[1].IsCover)
}

func TestUpdatePhotoGPS(t *testing.T) {
	s, _ := newTestStore(t, "user-1")
	ctx := context.Background()

	photo := inlinePhoto("front", true)
	photo.GPS = &models.Location{Lat: 35.0, Lng: 139.0}

	created, err := s.Create(ctx, models.RecordInput{Name: "Denshu", Photos: []models.Photo{photo}})
	require.NoError(t, err)
	require.Len(t, created.Photos, 1)
	require.NotNil(t, created.Photos[0].GPS)

	// A stored photo without GPS in the new list clears the coordinate.
	stored := created.Photos[0]
	stored.GPS = nil
	updated, err := s.Update(ctx, created.ID, models.RecordPatch{
		Photos: []models.Photo{stored},
	})
	require.NoError(t, err)
	require.Len(t, updated.Photos, 1)
	assert.Nil(t, updated.Photos[0].GPS)
}

func TestUpdateNilPhotosKeepsPhotos(t *testing.T) {
	s, blobs := newTestStore(t, "user-1")
	ctx := context.Background()

	created, err := s.Create(ctx, models.RecordInput{
		Name:   "Hakkaisan",
		Photos: []models.Photo{inlinePhoto("front", true)},
	})
	require.NoError(t, err)

	name := "Hakkaisan Tokubetsu"
	updated, err := s.Update(ctx, created.ID, models.RecordPatch{Name: &name})
	require.NoError(t, err)
	assert.Len(t, updated.Photos, 1)
	assert.Equal(t, 1, blobs.Len())
}

func TestUpdateNotFound(t *testing.T) {
	s, _ := newTestStore(t, "user-1")

	_, err := s.Update(context.Background(), "missing", models.RecordPatch{})
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestDeleteRemovesPhotoObjects(t *testing.T) {
	s, blobs := newTestStore(t, "user-1")
	ctx := context.Background()

	created, err := s.Create(ctx, models.RecordInput{
		Name: "Juyondai",
		Photos: []models.Photo{
			inlinePhoto("front", true),
			inlinePhoto("back", false),
		},
	})
	require.NoError(t, err)
	require.Equal(t, 2, blobs.Len())

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Equal(t, 0, blobs.Len())

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), storage.ErrRecordNotFound)
}

func TestProbe(t *testing.T) {
	s, _ := newTestStore(t, "user-1")
	assert.NoError(t, s.Probe(context.Background()))
}
