package models

import (
	"strings"
	"time"
)

// Location is a geographic coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo is a single attachment belonging to exactly one record.
//
// URL is either a data: URL carrying inline image bytes that have not been
// uploaded yet, or a resolved object-storage URL for an already stored photo.
// GPS holds the coordinate extracted from the image metadata at capture time,
// when one was present.
type Photo struct {
	URL     string    `json:"url"`
	IsCover bool      `json:"isCover"`
	GPS     *Location `json:"gpsLocation,omitempty"`
}

// IsInline reports whether the photo still carries inline image bytes
// that have to be uploaded before the photo can be referenced remotely.
func (p Photo) IsInline() bool {
	return strings.HasPrefix(p.URL, "data:")
}

// Record is a single tasting entry.
type Record struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Photos       []Photo     `json:"photos"`
	AlcoholType  AlcoholType `json:"alcoholType"`
	Tags         []string    `json:"tags"`
	Restaurant   string      `json:"restaurant"`
	Origin       string      `json:"origin"`
	Location     *Location   `json:"location"`
	LocationText string      `json:"locationText,omitempty"`
	Date         string      `json:"date"` // calendar date, YYYY-MM-DD
	Rating       int         `json:"rating"`
	Memo         string      `json:"memo"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// RecordInput carries the caller-provided fields of a record. The store
// assigns the id and the timestamps on create.
type RecordInput struct {
	Name         string      `json:"name"`
	Photos       []Photo     `json:"photos"`
	AlcoholType  AlcoholType `json:"alcoholType"`
	Tags         []string    `json:"tags"`
	Restaurant   string      `json:"restaurant"`
	Origin       string      `json:"origin"`
	Location     *Location   `json:"location"`
	LocationText string      `json:"locationText,omitempty"`
	Date         string      `json:"date"`
	Rating       int         `json:"rating"`
	Memo         string      `json:"memo"`
}

// Input returns the caller-editable fields of the record, dropping the
// assigned id and timestamps. Used when copying a record into another store.
func (r Record) Input() RecordInput {
	return RecordInput{
		Name:         r.Name,
		Photos:       r.Photos,
		AlcoholType:  r.AlcoholType,
		Tags:         r.Tags,
		Restaurant:   r.Restaurant,
		Origin:       r.Origin,
		Location:     r.Location,
		LocationText: r.LocationText,
		Date:         r.Date,
		Rating:       r.Rating,
		Memo:         r.Memo,
	}
}

// RecordPatch is a partial update. A nil field is left untouched; this is
// different from setting a field to its empty value. Photos and Tags use
// nil-vs-non-nil for the same distinction. Location is consulted only when
// SetLocation is true, so the coordinate can be both replaced and cleared.
type RecordPatch struct {
	Name         *string
	Photos       []Photo
	AlcoholType  *AlcoholType
	Tags         []string
	Restaurant   *string
	Origin       *string
	Location     *Location
	SetLocation  bool
	LocationText *string
	Date         *string
	Rating       *int
	Memo         *string
}

// Apply merges the patch into r. Fields absent from the patch keep their
// current values. The photo list, when present, is normalized so the cover
// invariant holds after the merge.
func (p RecordPatch) Apply(r *Record) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Photos != nil {
		r.Photos = NormalizePhotos(p.Photos)
	}
	if p.AlcoholType != nil {
		r.AlcoholType = *p.AlcoholType
	}
	if p.Tags != nil {
		r.Tags = p.Tags
	}
	if p.Restaurant != nil {
		r.Restaurant = *p.Restaurant
	}
	if p.Origin != nil {
		r.Origin = *p.Origin
	}
	if p.SetLocation {
		r.Location = p.Location
	}
	if p.LocationText != nil {
		r.LocationText = *p.LocationText
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Memo != nil {
		r.Memo = *p.Memo
	}
}

// CoverPhoto returns the photo flagged as cover, the first photo when none
// is flagged, or nil for an empty list.
func CoverPhoto(photos []Photo) *Photo {
	if len(photos) == 0 {
		return nil
	}
	for i := range photos {
		if photos[i].IsCover {
			return &photos[i]
		}
	}
	return &photos[0]
}

// NormalizePhotos enforces the cover invariant on a photo list: a non-empty
// list has exactly one cover. The first flagged photo wins; when none is
// flagged the first photo is promoted. The input slice is not modified.
func NormalizePhotos(photos []Photo) []Photo {
	if len(photos) == 0 {
		return photos
	}
	out := make([]Photo, len(photos))
	copy(out, photos)

	cover := -1
	for i := range out {
		if out[i].IsCover {
			if cover == -1 {
				cover = i
			} else {
				out[i].IsCover = false
			}
		}
	}
	if cover == -1 {
		out[0].IsCover = true
	}
	return out
}
