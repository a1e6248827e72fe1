package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakelabeler/sakelabeler/internal/storage"
)

func (c *Cli) runUse(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing target. Usage: sakelabeler use <own|owner-id>")
	}

	if args[0] == "own" {
		if err := c.selector.UseOwn(ctx); err != nil {
			return err
		}
		c.io.Println("✓ Viewing your own records.")
		return nil
	}

	ownerID := args[0]
	if err := c.selector.UseShared(ctx, ownerID); err != nil {
		if errors.Is(err, storage.ErrNotShared) {
			return fmt.Errorf("%s has not shared their records with you. Ask them to run 'sakelabeler share invite <your-user-id>'", ownerID)
		}
		return err
	}
	c.io.Printf("✓ Viewing records shared by %s.\n", ownerID)
	return nil
}
