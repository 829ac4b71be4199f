package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
)

// LocalStore keeps artifacts below a directory. References are the cleaned keys.
type LocalStore struct {
	root string
}

var _ ports.ArtifactStore = (*LocalStore)(nil)

// NewLocalStore creates root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, errors.New("storage directory is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

func (s *LocalStore) path(ref string) (string, string, error) {
	key, err := cleanKey(ref)
	if err != nil {
		return "", "", err
	}
	return key, filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *LocalStore) Store(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	ref, full, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create artifact directory: %w", err)
	}
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("commit artifact: %w", err)
	}
	return ref, nil
}

func (s *LocalStore) Open(ctx context.Context, ref string) ([]byte, error) {
	_, full, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", ref, err)
	}
	return content, nil
}

// Delete removes ref. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	_, full, err := s.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete artifact %s: %w", ref, err)
	}
	return nil
}
