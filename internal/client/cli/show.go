package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakelabeler/sakelabeler/internal/models"
)

func (c *Cli) runShow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: sakelabeler show <id>")
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

	c.io.Printf("=== %s ===\n", rec.Name)
	c.io.Println()
	c.io.Printf("ID:         %s\n", rec.ID)
	c.io.Printf("Type:       %s\n", rec.AlcoholType.Label())
	c.io.Printf("Rating:     %s\n", ratingStars(rec.Rating))
	if len(rec.Tags) > 0 {
		c.io.Printf("Tags:       %s\n", strings.Join(rec.Tags, ", "))
	}
	if rec.Restaurant != "" {
		c.io.Printf("Restaurant: %s\n", rec.Restaurant)
	}
	if rec.Origin != "" {
		c.io.Printf("Origin:     %s\n", rec.Origin)
	}
	if rec.Date != "" {
		c.io.Printf("Date:       %s\n", rec.Date)
	}
	if rec.Location != nil {
		c.io.Printf("Location:   %.5f, %.5f\n", rec.Location.Lat, rec.Location.Lng)
	}
	if rec.LocationText != "" {
		c.io.Printf("Place:      %s\n", rec.LocationText)
	}
	if rec.Memo != "" {
		c.io.Printf("Memo:       %s\n", rec.Memo)
	}
	c.io.Printf("Created:    %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))
	c.io.Printf("Updated:    %s\n", rec.UpdatedAt.Format("2006-01-02 15:04"))

	if len(rec.Photos) > 0 {
		c.io.Println()
		c.io.Printf("Photos (%d):\n", len(rec.Photos))
		for i, p := range rec.Photos {
			c.io.Printf("  %d. %s%s\n", i+1, photoLabel(p), coverMark(p))
		}
	}

	return nil
}

func photoLabel(p models.Photo) string {
	if p.IsInline() {
		return "(inline, not uploaded)"
	}
	return p.URL
}

func coverMark(p models.Photo) string {
	if p.IsCover {
		return " [cover]"
	}
	return ""
}
