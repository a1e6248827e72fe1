package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runShare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: sakelabeler share <invite|list|revoke|leave>")
	}

	remoteStore, err := c.openRemote(ctx, "")
	if err != nil {
		return err
	}

	switch args[0] {
	case "invite":
		if len(args) < 2 {
			return fmt.Errorf("missing user id. Usage: sakelabeler share invite <user-id>")
		}
		share, err := remoteStore.Invite(ctx, args[1])
		if err != nil {
			return fmt.Errorf("failed to create share: %w", err)
		}
		c.io.Println("✓ Share created!")
		c.io.Printf("Share ID: %s\n", share.ID)
		c.io.Printf("%s can now view and edit your records.\n", share.InviteeID)
		return nil

	case "list":
		owned, err := remoteStore.SharesOwned(ctx)
		if err != nil {
			return fmt.Errorf("failed to list shares: %w", err)
		}
		received, err := remoteStore.SharesReceived(ctx)
		if err != nil {
			return fmt.Errorf("failed to list shares: %w", err)
		}

		c.io.Println("=== Shares ===")
		c.io.Println()
		c.io.Printf("Given (%d):\n", len(owned))
		for _, s := range owned {
			c.io.Printf("  %s  to %s  (%s)\n", s.ID, s.InviteeID, s.CreatedAt.Format("2006-01-02"))
		}
		c.io.Println()
		c.io.Printf("Received (%d):\n", len(received))
		for _, s := range received {
			c.io.Printf("  %s  from %s  (%s)\n", s.ID, s.OwnerID, s.CreatedAt.Format("2006-01-02"))
		}
		if len(received) > 0 {
			c.io.Println()
			c.io.Println("Use 'sakelabeler use <owner-id>' to view a shared dataset.")
		}
		return nil

	case "revoke":
		if len(args) < 2 {
			return fmt.Errorf("missing share id. Usage: sakelabeler share revoke <share-id>")
		}
		if err := remoteStore.Revoke(ctx, args[1]); err != nil {
			return fmt.Errorf("failed to revoke share: %w", err)
		}
		c.io.Println("✓ Share revoked.")
		return nil

	case "leave":
		if len(args) < 2 {
			return fmt.Errorf("missing share id. Usage: sakelabeler share leave <share-id>")
		}
		if err := remoteStore.Leave(ctx, args[1]); err != nil {
			return fmt.Errorf("failed to leave share: %w", err)
		}
		c.io.Println("✓ Left shared dataset.")
		return nil

	default:
		return fmt.Errorf("unknown share subcommand: %s. Use: invite, list, revoke, or leave", args[0])
	}
}
