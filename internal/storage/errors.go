package storage

import "errors"

// Common storage errors
var (
	// ErrRecordNotFound indicates that no record exists for the given id
	ErrRecordNotFound = errors.New("record not found")

	// ErrNotAuthenticated indicates a remote operation without a resolvable user
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionNotFound indicates that no session data exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrShareNotFound indicates that no share exists for the given id
	ErrShareNotFound = errors.New("share not found")

	// ErrAlreadyShared indicates a duplicate owner/invitee pair
	ErrAlreadyShared = errors.New("user is already invited")

	// ErrSelfShare indicates an attempt to invite one's own user id
	ErrSelfShare = errors.New("cannot invite your own user id")

	// ErrNotShared indicates a viewing-context target whose owner has not
	// shared their records with the caller
	ErrNotShared = errors.New("records are not shared with you")
)
