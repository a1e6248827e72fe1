package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/validation"
)

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: sakelabeler edit <id>")
	}
	id := args[0]

	store, _, err := c.activeStore(ctx)
	if err != nil {
		return err
	}

	rec, err := store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	c.io.Printf("=== Edit %s ===\n", rec.Name)
	c.io.Println("Press Enter to keep the current value.")
	c.io.Println()

	var patch models.RecordPatch

	if v, err := c.editString("Name", rec.Name); err != nil {
		return err
	} else if v != nil {
		patch.Name = v
	}

	if v, err := c.editString("Type", string(rec.AlcoholType)); err != nil {
		return err
	} else if v != nil {
		t := models.AlcoholType(*v)
		if !t.Valid() {
			return fmt.Errorf("unknown alcohol type %q", *v)
		}
		patch.AlcoholType = &t
	}

	if v, err := c.editString("Tags", strings.Join(rec.Tags, ", ")); err != nil {
		return err
	} else if v != nil {
		patch.Tags = splitTags(*v)
	}

	if v, err := c.editString("Restaurant", rec.Restaurant); err != nil {
		return err
	} else if v != nil {
		patch.Restaurant = v
	}

	if v, err := c.editString("Origin", rec.Origin); err != nil {
		return err
	} else if v != nil {
		patch.Origin = v
	}

	if v, err := c.editString("Date", rec.Date); err != nil {
		return err
	} else if v != nil {
		if err := validation.ValidateDate(*v); err != nil {
			return err
		}
		patch.Date = v
	}

	if v, err := c.editString("Rating", strconv.Itoa(rec.Rating)); err != nil {
		return err
	} else if v != nil {
		rating, err := strconv.Atoi(*v)
		if err != nil {
			return fmt.Errorf("rating must be a number: %w", err)
		}
		if err := validation.ValidateRating(rating); err != nil {
			return err
		}
		patch.Rating = &rating
	}

	if v, err := c.editString("Memo", rec.Memo); err != nil {
		return err
	} else if v != nil {
		patch.Memo = v
	}

	photos, changed, err := c.editPhotos(rec.Photos)
	if err != nil {
		return err
	}
	if changed {
		if err := validation.ValidatePhotos(photos); err != nil {
			return err
		}
		patch.Photos = photos
	}

	updated, err := store.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Record updated!")
	c.io.Printf("Name: %s\n", updated.Name)
	return nil
}

// editString prompts with the current value; an empty answer keeps it and
// "-" clears the field.
func (c *Cli) editString(label, current string) (*string, error) {
	input, err := c.io.ReadInput(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	switch input {
	case "":
		return nil, nil
	case "-":
		empty := ""
		return &empty, nil
	default:
		return &input, nil
	}
}

// editPhotos optionally reworks the photo list: removing entries by index,
// adding new files and picking a new cover.
func (c *Cli) editPhotos(current []models.Photo) ([]models.Photo, bool, error) {
	answer, err := c.io.ReadInput(fmt.Sprintf("Edit photos? %d attached (y/N): ", len(current)))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read answer: %w", err)
	}
	if answer != "y" && answer != "Y" {
		return nil, false, nil
	}

	photos := make([]models.Photo, len(current))
	copy(photos, current)

	for i, p := range photos {
		c.io.Printf("  %d. %s%s\n", i+1, photoLabel(p), coverMark(p))
	}

	removeInput, err := c.io.ReadInput("Remove (comma separated numbers, empty for none): ")
	if err != nil {
		return nil, false, fmt.Errorf("failed to read removals: %w", err)
	}
	if removeInput != "" {
		remove := map[int]bool{}
		for _, part := range strings.Split(removeInput, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 || n > len(photos) {
				return nil, false, fmt.Errorf("invalid photo number %q", strings.TrimSpace(part))
			}
			remove[n-1] = true
		}
		kept := photos[:0]
		for i, p := range photos {
			if !remove[i] {
				kept = append(kept, p)
			}
		}
		photos = kept
	}

	for {
		path, err := c.io.ReadInput("Add photo path (empty to finish): ")
		if err != nil {
			return nil, false, fmt.Errorf("failed to read photo path: %w", err)
		}
		if path == "" {
			break
		}
		photo, err := loadPhoto(path)
		if err != nil {
			return nil, false, err
		}
		photos = append(photos, photo)
		c.io.Printf("  added %s\n", path)
	}

	if len(photos) > 1 {
		coverInput, err := c.io.ReadInput("Cover photo number (empty to keep): ")
		if err != nil {
			return nil, false, fmt.Errorf("failed to read cover: %w", err)
		}
		if coverInput != "" {
			n, err := strconv.Atoi(coverInput)
			if err != nil || n < 1 || n > len(photos) {
				return nil, false, fmt.Errorf("invalid photo number %q", coverInput)
			}
			for i := range photos {
				photos[i].IsCover = i == n-1
			}
		}
	}

	return models.NormalizePhotos(photos), true, nil
}
