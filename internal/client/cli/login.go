package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Email: %s\n", session.Email)

	// Local records can now be moved to the backend.
	records, err := c.local.GetAll(ctx)
	if err == nil && len(records) > 0 {
		c.io.Println()
		c.io.Printf("You have %d local record(s).\n", len(records))
		c.io.Println("Run 'sakelabeler migrate' to move them to the backend.")
	}

	return nil
}
