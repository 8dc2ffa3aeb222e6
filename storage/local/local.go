// Package local stores exported artifacts on the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptstudio/promptstudio"
)

// Store writes files under a root directory and returns their filesystem
// paths.
type Store struct {
	root string
}

// Ensure Store implements the interface.
var _ promptstudio.Storage = (*Store)(nil)

// New creates a Store rooted at root. The directory is created on first save.
func New(root string) *Store {
	return &Store{root: root}
}

// SaveFile writes data under the store's root and returns the full path.
func (s *Store) SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := filepath.Join(s.root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return full, nil
}
