package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sakelabeler/sakelabeler/internal/models"
)

func TestValidateRating(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{"unrated", 0, false},
		{"minimum", 1, false},
		{"maximum", 5, false},
		{"too high", 6, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRating(tt.rating)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate(""))
	assert.NoError(t, ValidateDate("2026-08-10"))
	assert.Error(t, ValidateDate("10/08/2026"))
	assert.Error(t, ValidateDate("2026-13-01"))
	assert.Error(t, ValidateDate("yesterday"))
}

func TestValidatePhotos(t *testing.T) {
	assert.NoError(t, ValidatePhotos(nil))
	assert.NoError(t, ValidatePhotos([]models.Photo{
		{URL: "data:image/jpeg;base64,aa", IsCover: true},
		{URL: "https://cdn.example.com/a.jpg"},
	}))

	assert.Error(t, ValidatePhotos([]models.Photo{{URL: ""}}))
	assert.Error(t, ValidatePhotos([]models.Photo{
		{URL: "a", IsCover: true},
		{URL: "b", IsCover: true},
	}))
}

func TestValidateInput(t *testing.T) {
	valid := models.RecordInput{
		Name:        "Kubota Manju",
		AlcoholType: models.AlcoholNihonshu,
		Date:        "2026-08-10",
		Rating:      5,
	}
	assert.NoError(t, ValidateInput(valid))

	noName := valid
	noName.Name = ""
	assert.Error(t, ValidateInput(noName))

	badType := valid
	badType.AlcoholType = "cider"
	assert.Error(t, ValidateInput(badType))
}
