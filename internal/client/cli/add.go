package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/validation"
)

func (c *Cli) runAdd(ctx context.Context) error {
	c.io.Println("=== Add Record ===")
	c.io.Println()

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}

	alcoholType, err := c.readAlcoholType()
	if err != nil {
		return err
	}

	tags, err := c.readTags(alcoholType)
	if err != nil {
		return err
	}

	restaurant, err := c.io.ReadInput("Restaurant: ")
	if err != nil {
		return fmt.Errorf("failed to read restaurant: %w", err)
	}
	origin, err := c.io.ReadInput("Origin (brewery/region): ")
	if err != nil {
		return fmt.Errorf("failed to read origin: %w", err)
	}
	date, err := c.io.ReadInput("Date (YYYY-MM-DD, empty for none): ")
	if err != nil {
		return fmt.Errorf("failed to read date: %w", err)
	}
	rating, err := c.readRating()
	if err != nil {
		return err
	}
	memo, err := c.io.ReadInput("Memo: ")
	if err != nil {
		return fmt.Errorf("failed to read memo: %w", err)
	}

	photos, err := c.readPhotos()
	if err != nil {
		return err
	}

	input := models.RecordInput{
		Name:        name,
		Photos:      photos,
		AlcoholType: alcoholType,
		Tags:        tags,
		Restaurant:  restaurant,
		Origin:      origin,
		Date:        date,
		Rating:      rating,
		Memo:        memo,
	}
	c.fillLocationFromPhotos(ctx, &input)

	if err := validation.ValidateInput(input); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	store, _, err := c.activeStore(ctx)
	if err != nil {
		return err
	}

	rec, err := store.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Record added!")
	c.io.Printf("ID: %s\n", rec.ID)
	return nil
}

// readAlcoholType prompts with the known type keys.
func (c *Cli) readAlcoholType() (models.AlcoholType, error) {
	c.io.Println("Alcohol types:")
	for _, t := range models.AlcoholTypes {
		c.io.Printf("  %-10s %s\n", t.Key, t.Label)
	}

	input, err := c.io.ReadInput("Type (empty for uncategorized): ")
	if err != nil {
		return "", fmt.Errorf("failed to read type: %w", err)
	}

	alcoholType := models.AlcoholType(input)
	if !alcoholType.Valid() {
		return "", fmt.Errorf("unknown alcohol type %q", input)
	}
	return alcoholType, nil
}

// readTags prompts for tags, defaulting to the type's preset tags.
func (c *Cli) readTags(alcoholType models.AlcoholType) ([]string, error) {
	var preset []string
	if cfg := models.AlcoholTypeConfigFor(alcoholType); cfg != nil {
		preset = cfg.Tags
	}

	prompt := "Tags (comma separated): "
	if len(preset) > 0 {
		prompt = fmt.Sprintf("Tags (comma separated, empty for %v): ", preset)
	}

	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	if input == "" {
		return preset, nil
	}
	return splitTags(input), nil
}

func (c *Cli) readRating() (int, error) {
	input, err := c.io.ReadInput("Rating (1-5, empty for unrated): ")
	if err != nil {
		return 0, fmt.Errorf("failed to read rating: %w", err)
	}
	if input == "" {
		return 0, nil
	}
	rating, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("rating must be a number: %w", err)
	}
	return rating, nil
}

// readPhotos prompts for photo files until an empty line. The first photo
// becomes the cover.
func (c *Cli) readPhotos() ([]models.Photo, error) {
	var photos []models.Photo
	for {
		path, err := c.io.ReadInput("Photo path (empty to finish): ")
		if err != nil {
			return nil, fmt.Errorf("failed to read photo path: %w", err)
		}
		if path == "" {
			return models.NormalizePhotos(photos), nil
		}

		photo, err := loadPhoto(path)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
		c.io.Printf("  added %s\n", path)
	}
}

// fillLocationFromPhotos copies the first photo GPS coordinate onto the
// record and resolves a place name for it. Geocoding is best effort; a
// failed lookup leaves the text empty.
func (c *Cli) fillLocationFromPhotos(ctx context.Context, input *models.RecordInput) {
	for _, p := range input.Photos {
		if p.GPS == nil {
			continue
		}
		input.Location = p.GPS

		if c.geocoder == nil {
			return
		}
		text, err := c.geocoder.ReverseGeocode(ctx, p.GPS.Lat, p.GPS.Lng)
		if err != nil {
			c.io.Printf("Warning: failed to resolve place name: %v\n", err)
			return
		}
		input.LocationText = text
		return
	}
}
