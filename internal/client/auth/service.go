// Package auth manages the login session: exchanging credentials for tokens
// and resolving the authenticated user id for remote operations.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sakelabeler/sakelabeler/internal/client/api"
	"github.com/sakelabeler/sakelabeler/internal/storage"
)

// Service performs login/logout against the auth backend and persists the
// resulting session locally. It implements remote.Identity.
type Service struct {
	apiClient *api.Client
	sessions  storage.SessionStore
}

// NewService creates an auth service.
func NewService(apiClient *api.Client, sessions storage.SessionStore) *Service {
	return &Service{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Login exchanges the credentials for a token pair and saves the session.
func (s *Service) Login(ctx context.Context, email, password string) (*storage.Session, error) {
	resp, err := s.apiClient.PasswordGrant(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	uid := resp.User.ID
	if uid == "" {
		uid, err = subjectFromToken(resp.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user id: %w", err)
		}
	}

	session := &storage.Session{
		Email:        email,
		UserID:       uid,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + resp.ExpiresIn,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Logout notifies the backend (best effort) and deletes the local session.
func (s *Service) Logout(ctx context.Context) error {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		slog.Debug("no session found during logout", "error", err)
	} else {
		if logoutErr := s.apiClient.Logout(ctx, session.AccessToken); logoutErr != nil {
			slog.Warn("failed to logout on server", "error", logoutErr)
		}
	}

	if err := s.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// Session returns the stored session.
// Returns storage.ErrNotAuthenticated when none exists.
func (s *Service) Session(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, storage.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// UserID returns the authenticated user id.
// Returns storage.ErrNotAuthenticated when no session exists or the stored
// session has expired.
func (s *Service) UserID(ctx context.Context) (string, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	if session.ExpiresAt > 0 && session.ExpiresAt <= time.Now().Unix() {
		return "", storage.ErrNotAuthenticated
	}
	return session.UserID, nil
}

// IsAuthenticated reports whether a usable session exists.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	_, err := s.UserID(ctx)
	return err == nil
}

// subjectFromToken extracts the sub claim without verifying the signature.
// The token was just handed to us by the backend over TLS; we only need the
// id it carries.
func subjectFromToken(accessToken string) (string, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
