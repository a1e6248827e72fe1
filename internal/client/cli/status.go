package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	session, err := c.authService.Session(ctx)
	if err != nil {
		c.io.Println("Status: Not signed in")
		c.io.Println("Records are served from the local store.")
		c.io.Println()
		c.io.Println("Run 'sakelabeler login' to sign in.")
		return nil
	}

	c.io.Println("Status: Signed in")
	c.io.Printf("Email: %s\n", session.Email)

	expiresAt := time.Unix(session.ExpiresAt, 0)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining := time.Until(expiresAt); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("Token has expired. Please login again.")
	}

	store, vc, err := c.activeStore(ctx)
	if err != nil {
		return err
	}

	c.io.Println()
	if vc.Shared() {
		c.io.Printf("Viewing: records shared by %s\n", vc.OwnerID)
	} else {
		c.io.Println("Viewing: your own records")
	}

	records, err := store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	c.io.Printf("Records: %d\n", len(records))

	return nil
}
