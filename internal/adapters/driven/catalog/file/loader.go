package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/core/ports/driven"
	"github.com/custodia-labs/cmislogin/internal/logger"
)

const (
	// FileName is the catalog document used in normal operation.
	FileName = "sdc.json"

	// DevFileName is the catalog document used in development mode.
	DevFileName = "sdc-dev.json"
)

//go:embed sdc.json sdc-dev.json
var bundledCatalogs embed.FS

// Verify interface compliance.
var _ driven.CatalogLoader = (*Loader)(nil)

// Loader reads the catalog from disk or from the bundled copy.
type Loader struct {
	path    string
	dev     bool
	homeDir string
	workDir string
	bundled fs.FS
}

// Option configures a Loader.
type Option func(*Loader)

// WithPath makes the loader read only the given file.
func WithPath(path string) Option {
	return func(l *Loader) {
		l.path = path
	}
}

// WithDev selects the development catalog document.
func WithDev(dev bool) Option {
	return func(l *Loader) {
		l.dev = dev
	}
}

// WithSearchDirs overrides the home and working directories searched.
// An empty value disables that location.
func WithSearchDirs(homeDir, workDir string) Option {
	return func(l *Loader) {
		l.homeDir = homeDir
		l.workDir = workDir
	}
}

// WithBundled replaces the catalog documents compiled into the binary.
func WithBundled(fsys fs.FS) Option {
	return func(l *Loader) {
		l.bundled = fsys
	}
}

// NewLoader creates a catalog loader using the default search locations.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{bundled: bundledCatalogs}
	if home, err := os.UserHomeDir(); err == nil {
		l.homeDir = home
	}
	if wd, err := os.Getwd(); err == nil {
		l.workDir = wd
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FileName returns the document name the loader looks for.
func (l *Loader) FileName() string {
	if l.dev {
		return DevFileName
	}
	return FileName
}

// Locate returns the on-disk catalog file that Load would read.
// It returns an empty string when only the bundled copy is available.
func (l *Loader) Locate() string {
	if l.path != "" {
		return l.path
	}
	for _, dir := range []string{l.homeDir, l.workDir} {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, l.FileName())
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// Load reads and parses the catalog.
// It returns domain.ErrCatalogNotFound when no document exists. A document
// that cannot be parsed is logged and produces an empty catalog.
func (l *Loader) Load() (*domain.Catalog, error) {
	data, source, err := l.read()
	if err != nil {
		return nil, err
	}

	landscapes, err := Parse(data)
	if err != nil {
		logger.Error("cannot read catalog", "source", source, "error", err)
		return domain.NewCatalog(nil), nil
	}

	logger.Debug("catalog loaded", "source", source, "landscapes", len(landscapes))
	return domain.NewCatalog(landscapes), nil
}

func (l *Loader) read() ([]byte, string, error) {
	if path := l.Locate(); path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, path)
		}
		if err != nil {
			return nil, "", fmt.Errorf("read catalog %s: %w", path, err)
		}
		return data, path, nil
	}

	if l.bundled != nil {
		data, err := fs.ReadFile(l.bundled, l.FileName())
		if err == nil {
			return data, "bundled:" + l.FileName(), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("read bundled catalog: %w", err)
		}
	}

	return nil, "", fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, l.FileName())
}
