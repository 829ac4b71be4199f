// Package storage provides the artifact stores invoice files and project
// attachments are kept in.
package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
	"github.com/subhoajk39-commits/invvvoice/internal/platform/config"
)

// ErrInvalidKey is returned for empty keys and keys escaping the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// New builds the artifact store selected by cfg.Backend.
func New(cfg config.StorageConfig) (ports.ArtifactStore, error) {
	switch cfg.Backend {
	case config.StorageBackendLocal, "":
		return NewLocalStore(cfg.LocalDir)
	case config.StorageBackendS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// cleanKey normalises a slash separated key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return cleaned, nil
}
