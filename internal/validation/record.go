// Package validation checks record input before it reaches a store.
package validation

import (
	"fmt"
	"time"

	"github.com/sakelabeler/sakelabeler/internal/models"
)

const dateLayout = "2006-01-02"

// ValidateRating checks that the rating is within the 1..5 scale.
// Zero is allowed and means unrated.
func ValidateRating(rating int) error {
	if rating == 0 {
		return nil
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return nil
}

// ValidateDate checks that the date is empty or formatted YYYY-MM-DD.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("date must be formatted YYYY-MM-DD: %w", err)
	}
	return nil
}

// ValidatePhotos checks that every photo has a URL and that at most one is
// flagged as cover.
func ValidatePhotos(photos []models.Photo) error {
	covers := 0
	for i, p := range photos {
		if p.URL == "" {
			return fmt.Errorf("photo %d has no URL", i)
		}
		if p.IsCover {
			covers++
		}
	}
	if covers > 1 {
		return fmt.Errorf("expected at most one cover photo, got %d", covers)
	}
	return nil
}

// ValidateInput checks a full record input.
func ValidateInput(input models.RecordInput) error {
	if input.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !input.AlcoholType.Valid() {
		return fmt.Errorf("unknown alcohol type %q", input.AlcoholType)
	}
	if err := ValidateRating(input.Rating); err != nil {
		return err
	}
	if err := ValidateDate(input.Date); err != nil {
		return err
	}
	return ValidatePhotos(input.Photos)
}
