// Package memory implements an in-memory blob store for tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Store keeps objects in a map. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
}

// New creates an empty in-memory store. baseURL must end with a slash.
func New(baseURL string) *Store {
	return &Store{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Put stores an object under the given path.
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objects[path] = cp
	return nil
}

// Get downloads the object stored under the given path.
func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", path)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Remove deletes the given objects. Missing objects are not an error.
func (s *Store) Remove(ctx context.Context, paths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, path := range paths {
		delete(s.objects, path)
	}
	return nil
}

// PublicURL returns the displayable URL for a stored object.
func (s *Store) PublicURL(path string) string {
	return s.baseURL + path
}

// Path maps a URL produced by PublicURL back to its storage path.
func (s *Store) Path(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, s.baseURL)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}

// Exists reports whether an object is stored under the given path.
func (s *Store) Exists(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
