package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakelabeler/sakelabeler/internal/client/migrate"
)

func (c *Cli) runMigrate(ctx context.Context) error {
	c.io.Println("=== Migrate Local Records ===")
	c.io.Println()

	remoteStore, err := c.openRemote(ctx, "")
	if err != nil {
		return err
	}

	svc := migrate.NewService(c.local, remoteStore)
	result, err := svc.Run(ctx, func(done, total int) {
		c.io.Printf("  %d/%d transferred\n", done, total)
	})
	if err != nil {
		var transferErr *migrate.TransferError
		if errors.As(err, &transferErr) {
			c.io.Printf("Transferred %d of %d record(s) before the failure.\n",
				result.Migrated, result.Total)
			c.io.Println("Local records are untouched; fix the problem and run migrate again.")
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	if result.Total == 0 {
		c.io.Println("No local records to migrate.")
		return nil
	}

	c.io.Println()
	c.io.Printf("✓ Migrated %d record(s) to the backend.\n", result.Migrated)
	return nil
}
