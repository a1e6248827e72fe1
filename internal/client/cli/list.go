package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runList(ctx context.Context) error {
	store, vc, err := c.activeStore(ctx)
	if err != nil {
		return err
	}

	if vc.Shared() {
		c.io.Printf("=== Records shared by %s ===\n", vc.OwnerID)
	} else {
		c.io.Println("=== Records ===")
	}
	c.io.Println()

	records, err := store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(records) == 0 {
		c.io.Println("No records found.")
		c.io.Println()
		c.io.Println("Use 'sakelabeler add' to add your first record.")
		return nil
	}

	c.io.Printf("Found %d record(s):\n", len(records))
	c.io.Println()

	for i, rec := range records {
		c.io.Printf("%d. %s\n", i+1, rec.Name)
		c.io.Printf("   ID:     %s\n", rec.ID)
		c.io.Printf("   Type:   %s\n", rec.AlcoholType.Label())
		c.io.Printf("   Rating: %s\n", ratingStars(rec.Rating))
		if rec.Date != "" {
			c.io.Printf("   Date:   %s\n", rec.Date)
		}
		if len(rec.Tags) > 0 {
			c.io.Printf("   Tags:   %s\n", strings.Join(rec.Tags, ", "))
		}
		if len(rec.Photos) > 0 {
			c.io.Printf("   Photos: %d\n", len(rec.Photos))
		}
		c.io.Println()
	}

	return nil
}
