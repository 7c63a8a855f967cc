package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mcpapp/pkg/logging"
)

// DefaultDebounce is how long the watcher waits for further changes before reloading.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc is called once per burst of definition changes.
type ReloadFunc func(ctx context.Context) error

// Watcher reloads definitions when YAML files under an app directory change.
type Watcher struct {
	appDir   string
	debounce time.Duration
	reload   ReloadFunc

	mu      sync.Mutex
	timer   *time.Timer
	pending []string
}

// NewWatcher creates a watcher for the tools, prompts and resources
// directories below appDir.
func NewWatcher(appDir string, debounce time.Duration, reload ReloadFunc) *Watcher {
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		appDir:   appDir,
		debounce: debounce,
		reload:   reload,
	}
}

// Run watches until ctx is cancelled. Missing directories are created so files
// added later are picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	for _, kind := range []Kind{KindTools, KindPrompts, KindResources} {
		dir := filepath.Join(w.appDir, string(kind))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := addTree(fsw, dir); err != nil {
			return err
		}
	}
	logging.Info("CatalogWatcher", "Started watching %s for definition changes", w.appDir)

	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			logging.Info("CatalogWatcher", "Stopped watching %s", w.appDir)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addTree(fsw, event.Name); err != nil {
					logging.Error("CatalogWatcher", err, "Failed to watch new directory %s", event.Name)
				}
				w.schedule(ctx, event.Name)
				continue
			}
			if !isYAMLFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logging.Error("CatalogWatcher", err, "Filesystem watcher error")
		}
	}
}

// addTree watches root and every directory below it. fsnotify is not recursive.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return err
		}
		logging.Debug("CatalogWatcher", "Watching directory: %s", path)
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, path)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		changed := w.pending
		w.pending = nil
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		logging.Info("CatalogWatcher", "Reloading definitions after %d file changes", len(changed))
		if err := w.reload(ctx); err != nil {
			logging.Error("CatalogWatcher", err, "Reload failed, keeping previous definitions")
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
