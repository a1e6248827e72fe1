package cli

import (
	"context"
	"fmt"
)

// Run dispatches a command. args are the arguments after the command name.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx)
	case "list":
		return c.runList(ctx)
	case "show":
		return c.runShow(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "copy":
		return c.runCopy(ctx, args)
	case "share":
		return c.runShare(ctx, args)
	case "use":
		return c.runUse(ctx, args)
	case "migrate":
		return c.runMigrate(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
