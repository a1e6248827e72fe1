package storage

import "context"

// Session is the authentication state received from the hosted backend.
// Tokens are stored as issued; the client performs no crypto of its own.
type Session struct {
	Email        string `json:"email"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

// SessionStore defines the client-side persistence of the session.
type SessionStore interface {
	// SaveSession stores the session, replacing any previous one.
	SaveSession(ctx context.Context, s *Session) error

	// GetSession retrieves the stored session.
	// Returns ErrSessionNotFound if no session exists.
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout).
	DeleteSession(ctx context.Context) error
}
