// Package blob defines the object-storage port for photo binaries.
package blob

import "context"

// Store is the object storage holding photo binaries. Objects are keyed by
// a path of the form {owner-id}/{record-id}/{photo-id}.jpg.
type Store interface {
	// Put uploads an object under the given path.
	Put(ctx context.Context, path string, data []byte, contentType string) error

	// Get downloads the object stored under the given path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Remove deletes the given objects. Missing objects are not an error.
	Remove(ctx context.Context, paths ...string) error

	// PublicURL returns the displayable URL for a stored object.
	PublicURL(path string) string

	// Path maps a URL produced by PublicURL back to its storage path.
	// ok is false for URLs that do not point into this store.
	Path(url string) (path string, ok bool)
}
