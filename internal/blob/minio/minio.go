// Package minio implements the blob store on a MinIO/S3 bucket.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds the connection settings for the photo bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store is the MinIO-backed blob store.
type Store struct {
	cl      *minio.Client
	bucket  string
	baseURL string
}

// New connects to the object storage and makes sure the photo bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := cl.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := cl.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &Store{
		cl:      cl,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s://%s/%s/", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

// Put uploads an object under the given path.
func (s *Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.cl.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

// Get downloads the object stored under the given path.
func (s *Store) Get(ctx context.Context, path string) ([]byte, error) {
	obj, err := s.cl.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Remove deletes the given objects. Missing objects are not an error.
func (s *Store) Remove(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if err := s.cl.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
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
