// Package storage stores uploaded files in disk-rooted buckets and hands out
// their public URLs. It mirrors the list/upload/public-URL surface of a
// hosted object store without implementing any storage internals.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"senateur-site/internal/config"
)

// Buckets known to the application. Uploads outside these are rejected.
const (
	BucketImages    = "images"
	BucketDocuments = "documents"
	BucketMedia     = "media"
)

var buckets = map[string]bool{
	BucketImages:    true,
	BucketDocuments: true,
	BucketMedia:     true,
}

// Store writes uploads under RootDir/<bucket>/ and builds public URLs under
// PublicBase + "/uploads/".
type Store struct {
	rootDir    string
	publicBase string
}

// New creates the bucket directories and returns a Store.
func New(cfg config.StorageConfig) (*Store, error) {
	for bucket := range buckets {
		dir := filepath.Join(cfg.RootDir, bucket)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create bucket directory %s: %w", dir, err)
		}
	}
	return &Store{
		rootDir:    cfg.RootDir,
		publicBase: strings.TrimSuffix(cfg.PublicBase, "/"),
	}, nil
}

// RootDir returns the directory the buckets live under, for static serving.
func (s *Store) RootDir() string {
	return s.rootDir
}

// Upload stores the content of r under a unique key derived from filename
// and returns the public URL of the object. The original filename is kept as
// a suffix so downloads stay recognizable; a uuid prefix guarantees
// uniqueness.
func (s *Store) Upload(bucket, filename string, r io.Reader) (string, error) {
	if !buckets[bucket] {
		return "", fmt.Errorf("unknown bucket %q", bucket)
	}
	key := uuid.NewString() + "-" + sanitizeFilename(filename)

	dst, err := os.Create(filepath.Join(s.rootDir, bucket, key))
	if err != nil {
		return "", fmt.Errorf("failed to create object in bucket %s: %w", bucket, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", key, err)
	}
	return s.PublicURL(bucket, key), nil
}

// List returns the object keys in a bucket.
func (s *Store) List(bucket string) ([]string, error) {
	if !buckets[bucket] {
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
	entries, err := os.ReadDir(filepath.Join(s.rootDir, bucket))
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

// PublicURL builds the public URL of an object.
func (s *Store) PublicURL(bucket, key string) string {
	return s.publicBase + path.Join("/uploads", bucket, key)
}

// sanitizeFilename strips path separators and whitespace from an uploaded
// filename so it is safe as a key suffix.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "fichier"
	}
	return name
}
