package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sakelabeler/sakelabeler/internal/exif"
	"github.com/sakelabeler/sakelabeler/internal/imaging"
	"github.com/sakelabeler/sakelabeler/internal/models"
)

// loadPhoto reads an image file into an inline photo: GPS is pulled from the
// EXIF metadata, the image is normalized to JPEG and embedded as a data URL.
func loadPhoto(path string) (models.Photo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to read photo file: %w", err)
	}

	// GPS tags must be read before re-encoding strips them.
	lat, lng := exif.GPSLocation(raw)

	jpeg, err := imaging.PrepareJPEG(raw)
	if err != nil {
		return models.Photo{}, fmt.Errorf("failed to prepare photo: %w", err)
	}

	photo := models.Photo{URL: imaging.EncodeDataURL(jpeg, "image/jpeg")}
	if lat != nil && lng != nil {
		photo.GPS = &models.Location{Lat: *lat, Lng: *lng}
	}
	return photo, nil
}

// ratingStars renders a 1..5 rating; zero renders as unrated.
func ratingStars(rating int) string {
	if rating < 1 || rating > 5 {
		return "unrated"
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// splitTags parses a comma-separated tag list, dropping empties.
func splitTags(input string) []string {
	tags := []string{}
	for _, t := range strings.Split(input, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
