package cli

import (
	"context"
	"errors"
	"fmt"
)

// runCopy duplicates a record from the currently viewed database into
// another one the caller is connected to by a share: a dataset shared with
// the caller, a dataset of someone the caller shares with, or the caller's
// own records when viewing a shared dataset.
func (c *Cli) runCopy(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record id. Usage: sakelabeler copy <id> <own|owner-id>")
	}
	id := args[0]

	uid, err := c.authService.UserID(ctx)
	if err != nil {
		return err
	}

	_, vc, err := c.selector.Active(ctx)
	if err != nil {
		return err
	}

	registry, err := c.openRemote(ctx, "")
	if err != nil {
		return err
	}
	received, err := registry.SharesReceived(ctx)
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}
	owned, err := registry.SharesOwned(ctx)
	if err != nil {
		return fmt.Errorf("failed to list shares: %w", err)
	}

	// Either side of a share is a valid destination, except the database
	// currently viewed and the caller themselves.
	targets := []string{}
	seen := map[string]bool{uid: true, vc.OwnerID: true}
	for _, s := range received {
		if !seen[s.OwnerID] {
			seen[s.OwnerID] = true
			targets = append(targets, s.OwnerID)
		}
	}
	for _, s := range owned {
		if !seen[s.InviteeID] {
			seen[s.InviteeID] = true
			targets = append(targets, s.InviteeID)
		}
	}

	if len(args) < 2 {
		c.io.Println("Available targets:")
		if vc.Shared() {
			c.io.Println("  own")
		}
		for _, t := range targets {
			c.io.Printf("  %s\n", t)
		}
		return fmt.Errorf("missing target. Usage: sakelabeler copy <id> <own|owner-id>")
	}

	target := args[1]
	if target == "own" || target == uid {
		if !vc.Shared() {
			return errors.New("the record is already in your own database")
		}
		target = ""
	} else {
		if target == vc.OwnerID {
			return fmt.Errorf("the record is already in %s's database", target)
		}
		allowed := false
		for _, t := range targets {
			if t == target {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("no share connects you with %s", target)
		}
	}

	source, err := c.openRemote(ctx, vc.OwnerID)
	if err != nil {
		return err
	}
	copied, err := source.CopyRecord(ctx, id, target)
	if err != nil {
		return fmt.Errorf("failed to copy record: %w", err)
	}

	dest := "your own database"
	if target != "" {
		dest = fmt.Sprintf("%s's database", target)
	}
	c.io.Printf("✓ Record copied to %s!\n", dest)
	c.io.Printf("New ID: %s\n", copied.ID)
	return nil
}
