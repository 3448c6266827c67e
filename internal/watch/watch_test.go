package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string) <-chan struct{} {
	t.Helper()

	changed := make(chan struct{}, 1)
	w, err := New(dir, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(func() { _ = w.Stop() })
	require.NoError(t, w.Start(ctx))
	return changed
}

func waitForChange(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	changed := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.mdx"), []byte("---\n---\n"), 0o644))
	waitForChange(t, changed)
}

func TestWatcherSeesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	changed := startWatcher(t, dir)

	sub := filepath.Join(dir, "products")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitForChange(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "gold.mdx"), []byte("---\n---\n"), 0o644))
	waitForChange(t, changed)
}
