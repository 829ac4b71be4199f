// Package templates resolves logical invoice template names to template bytes.
package templates

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
)

// ErrTemplateNotFound is returned when a template is neither on disk nor built in.
var ErrTemplateNotFound = errors.New("template not found")

// FileSystemProvider reads templates from a directory. When a file is missing
// and a fallback is configured, the fallback bytes are served instead.
type FileSystemProvider struct {
	dir      string
	fallback func() ([]byte, error)
}

// Option configures a FileSystemProvider.
type Option func(*FileSystemProvider)

// WithFallback serves build() for templates missing from the directory.
func WithFallback(build func() ([]byte, error)) Option {
	return func(p *FileSystemProvider) {
		p.fallback = build
	}
}

// NewFileSystemProvider creates a provider rooted at dir.
func NewFileSystemProvider(dir string, options ...Option) *FileSystemProvider {
	p := &FileSystemProvider{dir: dir}
	for _, option := range options {
		option(p)
	}
	return p
}

var _ ports.TemplateProvider = (*FileSystemProvider)(nil)

func (p *FileSystemProvider) Template(ctx context.Context, name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: invalid name %q", ErrTemplateNotFound, name)
	}
	content, err := os.ReadFile(filepath.Join(p.dir, name))
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	if p.fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	middleware.GetLoggerFromCtx(ctx).Warn("Template file missing, using built-in template",
		slog.String("template", name),
		slog.String("dir", p.dir))
	return p.fallback()
}
