// Package cli implements the sakelabeler command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/sakelabeler/sakelabeler/internal/client/auth"
	"github.com/sakelabeler/sakelabeler/internal/client/iocli"
	"github.com/sakelabeler/sakelabeler/internal/client/selector"
	"github.com/sakelabeler/sakelabeler/internal/geo"
	"github.com/sakelabeler/sakelabeler/internal/storage"
	"github.com/sakelabeler/sakelabeler/internal/storage/remote"
)

// RemoteOpener builds a remote store scoped to ownerID. An empty ownerID
// scopes to the caller's own records. Returns an error when the remote
// backend is not configured.
type RemoteOpener func(ctx context.Context, ownerID string) (*remote.Store, error)

// Cli wires the services behind the commands.
type Cli struct {
	io          iocli.IO
	authService *auth.Service
	selector    *selector.Selector
	local       storage.RecordStore
	openRemote  RemoteOpener
	geocoder    *geo.Client
}

// New creates the CLI.
func New(io iocli.IO, authService *auth.Service, sel *selector.Selector, local storage.RecordStore, openRemote RemoteOpener, geocoder *geo.Client) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		selector:    sel,
		local:       local,
		openRemote:  openRemote,
		geocoder:    geocoder,
	}
}

// activeStore resolves the record store serving the current viewing context.
func (c *Cli) activeStore(ctx context.Context) (storage.RecordStore, storage.ViewingContext, error) {
	store, vc, err := c.selector.Active(ctx)
	if err != nil {
		return nil, storage.ViewingContext{}, fmt.Errorf("failed to resolve active store: %w", err)
	}
	return store, vc, nil
}

// PrintUsage prints the command overview.
func (c *Cli) PrintUsage() {
	c.io.Println("sakelabeler - personal sake tasting log")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  sakelabeler [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version        Show version information")
	c.io.Println("  --db PATH        Path to local database")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  login                     Sign in to the hosted backend")
	c.io.Println("  logout                    Sign out and clear the local session")
	c.io.Println("  status                    Show session and viewing context")
	c.io.Println("  add                       Add a tasting record")
	c.io.Println("  list                      List tasting records")
	c.io.Println("  show <id>                 Show full record details")
	c.io.Println("  edit <id>                 Edit a record")
	c.io.Println("  delete <id>               Delete a record")
	c.io.Println("  copy <id> <target>        Copy a record into another shared database")
	c.io.Println("  share invite <user-id>    Share your records with another user")
	c.io.Println("  share list                List shares given and received")
	c.io.Println("  share revoke <share-id>   Revoke a share you gave")
	c.io.Println("  share leave <share-id>    Leave a share you received")
	c.io.Println("  use own                   View your own records")
	c.io.Println("  use <owner-id>            View records shared by owner-id")
	c.io.Println("  migrate                   Move local records to the backend")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  sakelabeler add")
	c.io.Println("  sakelabeler list")
	c.io.Println("  sakelabeler login")
	c.io.Println("  sakelabeler migrate")
}
