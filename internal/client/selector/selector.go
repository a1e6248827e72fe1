// Package selector decides which record store serves the current session:
// the local embedded store while signed out, the remote store while signed
// in, optionally scoped to a dataset shared by another owner.
package selector

import (
	"context"
	"fmt"

	"github.com/sakelabeler/sakelabeler/internal/models"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// AuthState reports whether a usable login session exists.
type AuthState interface {
	IsAuthenticated(ctx context.Context) bool
}

// RemoteFactory builds a remote record store scoped to ownerID. An empty
// ownerID scopes the store to the authenticated caller's own records.
type RemoteFactory func(ctx context.Context, ownerID string) (storage.RecordStore, error)

// ReceivedShares lists the shares where the authenticated caller is the
// invitee. Only owners appearing here may be switched into.
type ReceivedShares func(ctx context.Context) ([]models.Share, error)

// Selector resolves the active record store. The chosen viewing context is
// persisted in local settings so it survives restarts.
type Selector struct {
	local    storage.RecordStore
	remote   RemoteFactory
	shares   ReceivedShares
	auth     AuthState
	settings storage.SettingsStore
}

// New creates a selector.
func New(local storage.RecordStore, remote RemoteFactory, shares ReceivedShares, auth AuthState, settings storage.SettingsStore) *Selector {
	return &Selector{
		local:    local,
		remote:   remote,
		shares:   shares,
		auth:     auth,
		settings: settings,
	}
}

// Active returns the record store for the current state together with the
// viewing context it serves. Signed out it is always the local store with
// the own-data context; signed in it is the remote store scoped to the
// persisted viewing context.
func (s *Selector) Active(ctx context.Context) (storage.RecordStore, storage.ViewingContext, error) {
	if !s.auth.IsAuthenticated(ctx) {
		return s.local, storage.ViewingContext{}, nil
	}

	vc, err := s.settings.GetViewingContext(ctx)
	if err != nil {
		return nil, storage.ViewingContext{}, fmt.Errorf("failed to load viewing context: %w", err)
	}

	store, err := s.remote(ctx, vc.OwnerID)
	if err != nil {
		return nil, storage.ViewingContext{}, fmt.Errorf("failed to open remote store: %w", err)
	}
	return store, vc, nil
}

// UseOwn switches the viewing context back to the caller's own records.
func (s *Selector) UseOwn(ctx context.Context) error {
	if err := s.settings.SaveViewingContext(ctx, storage.ViewingContext{}); err != nil {
		return fmt.Errorf("failed to save viewing context: %w", err)
	}
	return nil
}

// UseShared switches the viewing context to ownerID's shared dataset.
// Requires an authenticated session and a share received from that owner;
// the context is only persisted once the sharing registry confirms it.
func (s *Selector) UseShared(ctx context.Context, ownerID string) error {
	if !s.auth.IsAuthenticated(ctx) {
		return storage.ErrNotAuthenticated
	}

	received, err := s.shares(ctx)
	if err != nil {
		return fmt.Errorf("failed to list received shares: %w", err)
	}
	shared := false
	for _, share := range received {
		if share.OwnerID == ownerID {
			shared = true
			break
		}
	}
	if !shared {
		return storage.ErrNotShared
	}

	if err := s.settings.SaveViewingContext(ctx, storage.ViewingContext{OwnerID: ownerID}); err != nil {
		return fmt.Errorf("failed to save viewing context: %w", err)
	}
	return nil
}
