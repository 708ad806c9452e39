package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalBlobStore writes uploads under a base directory and returns URLs
// below a public prefix (the server exposes the directory as static files).
type LocalBlobStore struct {
	baseDir   string
	urlPrefix string
}

func NewLocalBlobStore(baseDir string, urlPrefix string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalBlobStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

func (store *LocalBlobStore) Upload(objectPath string, data []byte) (string, error) {
	cleaned, err := sanitizeObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	target := filepath.Join(store.baseDir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write object %s: %w", cleaned, err)
	}

	return store.urlPrefix + "/" + cleaned, nil
}

func sanitizeObjectPath(objectPath string) (string, error) {
	cleaned := path.Clean(strings.TrimPrefix(strings.TrimSpace(objectPath), "/"))
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return cleaned, nil
}
