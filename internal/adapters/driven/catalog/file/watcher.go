package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
	"github.com/custodia-labs/cmislogin/internal/logger"
)

// DefaultDebounce is how long the watcher waits for further writes before
// reloading the catalog.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the catalog whenever its document changes on disk.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
}

// NewWatcher creates a watcher for the catalog file at path.
// The file does not need to exist yet; its directory does.
func NewWatcher(loader *Loader, path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{loader: loader, path: path, debounce: debounce}
}

// Watch blocks until ctx is done, calling onChange with the reloaded catalog
// after each change to the file. Load errors are logged and skipped.
func (w *Watcher) Watch(ctx context.Context, onChange func(*domain.Catalog)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory and filter.
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("watching catalog", "path", w.path)

	// Reloads run on this goroutine, one at a time, and never after return.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !isContentChange(event.Op) {
				continue
			}
			logger.Debug("catalog changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload(onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload(onChange func(*domain.Catalog)) {
	catalog, err := w.loader.Load()
	if err != nil {
		logger.Warn("catalog reload failed", "path", w.path, "error", err)
		return
	}
	logger.Info("catalog reloaded", "path", w.path, "landscapes", catalog.Len())
	onChange(catalog)
}

func isContentChange(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) ||
		op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
