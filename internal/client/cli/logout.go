package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	// Back to own data; a stale shared context is useless while signed out.
	if err := c.selector.UseOwn(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Logged out. Records are now served from the local store.")
	return nil
}
