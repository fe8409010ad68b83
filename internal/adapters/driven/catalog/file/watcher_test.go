package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cmislogin/internal/core/domain"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, FileName, `[{"name": "Before"}]`)

	loader := NewLoader(WithPath(path))
	watcher := NewWatcher(loader, path, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *domain.Catalog, 4)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Watch(ctx, func(c *domain.Catalog) { changes <- c })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "After"}, {"name": "Other"}]`), 0600))

	select {
	case catalog := <-changes:
		assert.Equal(t, 0, catalog.IndexOf("After"))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for catalog reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_ReloadsOneAtATime(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, FileName, `[{"name": "Start"}]`)

	watcher := NewWatcher(NewLoader(WithPath(path)), path, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		active   atomic.Int32
		overlap  atomic.Bool
		returned atomic.Bool
		late     atomic.Bool
		calls    atomic.Int32
	)
	onChange := func(*domain.Catalog) {
		if returned.Load() {
			late.Store(true)
		}
		if active.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(50 * time.Millisecond)
		active.Add(-1)
		calls.Add(1)
	}

	done := make(chan error, 1)
	go func() {
		err := watcher.Watch(ctx, onChange)
		returned.Store(true)
		done <- err
	}()

	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`[{"name": "Next"}]`), 0600))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() > 0 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	time.Sleep(100 * time.Millisecond)
	assert.False(t, overlap.Load(), "reloads overlapped")
	assert.False(t, late.Load(), "reload after Watch returned")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", FileName)
	watcher := NewWatcher(NewLoader(WithPath(path)), path, 0)

	err := watcher.Watch(context.Background(), func(*domain.Catalog) {})

	assert.Error(t, err)
}

func TestIsContentChange(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want bool
	}{
		{fsnotify.Create, true},
		{fsnotify.Write, true},
		{fsnotify.Remove, true},
		{fsnotify.Rename, true},
		{fsnotify.Chmod, false},
		{fsnotify.Write | fsnotify.Chmod, true},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, isContentChange(tt.op))
		})
	}
}
