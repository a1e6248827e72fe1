package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: sakelabeler delete <id>")
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

	answer, err := c.io.ReadInput(fmt.Sprintf("Delete %q and its %d photo(s)? (y/N): ", rec.Name, len(rec.Photos)))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if answer != "y" && answer != "Y" {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	c.io.Println("✓ Record deleted.")
	return nil
}
