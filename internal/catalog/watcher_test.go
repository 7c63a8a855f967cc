package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesReloads(t *testing.T) {
	appDir := t.TempDir()

	var reloads atomic.Int32
	w := NewWatcher(appDir, 100*time.Millisecond, func(ctx context.Context) error {
		reloads.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		return dirExists(filepath.Join(appDir, "resources"))
	}, 2*time.Second, 10*time.Millisecond)
	// Give the watcher time to register the directories.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(appDir, "tools", "t.yaml"), "name: t\ncategory: c\n")
	}
	writeFile(t, filepath.Join(appDir, "tools", "notes.txt"), "ignored")

	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_ReloadsNestedDefinitions(t *testing.T) {
	appDir := t.TempDir()
	nested := filepath.Join(appDir, "tools", "team", "a.yaml")
	writeFile(t, nested, "name: a\ncategory: c\n")

	tools, err := LoadTools(filepath.Join(appDir, "tools"))
	require.NoError(t, err)
	require.Len(t, tools, 1)

	var reloads atomic.Int32
	w := NewWatcher(appDir, 50*time.Millisecond, func(ctx context.Context) error {
		reloads.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool {
		return dirExists(filepath.Join(appDir, "resources"))
	}, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	t.Run("existing subdirectory", func(t *testing.T) {
		writeFile(t, nested, "name: a\ncategory: changed\n")
		assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("subdirectory created while running", func(t *testing.T) {
		dir := filepath.Join(appDir, "prompts", "later")
		require.NoError(t, os.MkdirAll(dir, 0755))
		assert.Eventually(t, func() bool { return reloads.Load() >= 2 }, 2*time.Second, 20*time.Millisecond)
		time.Sleep(100 * time.Millisecond)

		before := reloads.Load()
		writeFile(t, filepath.Join(dir, "p.yaml"), "name: p\ncategory: c\n")
		assert.Eventually(t, func() bool { return reloads.Load() > before }, 2*time.Second, 20*time.Millisecond)
	})

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
