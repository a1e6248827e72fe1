package storage

import "context"

// ViewingContext selects whose remote records the client operates on.
// The zero value means "own data"; otherwise OwnerID names the owner of the
// shared dataset being viewed. It is client-side state only and never
// modifies share rows.
type ViewingContext struct {
	OwnerID string `json:"ownerId"`
}

// Shared reports whether the context points at another user's dataset.
func (v ViewingContext) Shared() bool {
	return v.OwnerID != ""
}

// SettingsStore persists small pieces of client state across sessions.
type SettingsStore interface {
	// SaveViewingContext stores the current viewing context.
	SaveViewingContext(ctx context.Context, vc ViewingContext) error

	// GetViewingContext returns the stored viewing context.
	// Returns the zero ("own data") context if none was saved.
	GetViewingContext(ctx context.Context) (ViewingContext, error)
}
