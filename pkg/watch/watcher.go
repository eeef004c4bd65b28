package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/tabula/pkg/config"
)

// Config contains configuration for the watcher.
type Config struct {
	// Paths are the files and directories to watch. Directories are
	// watched recursively.
	Paths []string

	// Debounce is the time to wait after the last event before the
	// callback runs.
	Debounce time.Duration

	// Extensions limits directory events to these file extensions. Files
	// named in Paths always trigger.
	Extensions []string

	// SkipHidden ignores files and directories whose name starts with a dot.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   config.DefaultWatchDebounce,
		Extensions: append([]string(nil), config.DefaultWatchExtensions...),
		SkipHidden: true,
	}
}

// FromConfig builds a watcher configuration for paths from the watch
// section of the application config.
func FromConfig(cfg config.WatchConfig, paths ...string) *Config {
	c := DefaultConfig()
	c.Paths = paths
	if cfg.Debounce > 0 {
		c.Debounce = cfg.Debounce
	}
	if len(cfg.Extensions) > 0 {
		c.Extensions = cfg.Extensions
	}
	return c
}

// Watcher watches input files and runs a callback when they change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// files are the cleaned file paths named in Config.Paths.
	files map[string]bool

	// dirs are the directories named in Config.Paths, cleaned.
	dirs []string

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. Every path must exist.
func New(cfg *Config) (*Watcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		logger:   slog.Default().With("component", "watch"),
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		files:    make(map[string]bool),
		stopCh:   make(chan struct{}),
	}

	for _, path := range cfg.Paths {
		if err := w.addPath(path); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %q: %w", path, err)
		}
	}

	return w, nil
}

// Watch blocks until ctx is cancelled or Stop is called, running onChange
// with the path of the last changed file after each debounced burst of
// events. Callback errors are logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		_ = w.watcher.Close()

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.logger.Info("file watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Has(fsnotify.Create) && w.addNewDirectory(event.Name) {
				continue
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			path := event.Name
			w.debounce.Trigger(func() {
				w.logger.Info("input changed", "path", path)
				if err := onChange(path); err != nil {
					w.logger.Error("change handler failed",
						"path", path,
						"error", err,
					)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop ends a running Watch. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// Close releases the watcher without watching. Watch closes it on return.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	return w.watcher.Close()
}

func (w *Watcher) addPath(path string) error {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		w.dirs = append(w.dirs, path)
		return w.addDirectory(path)
	}

	w.files[path] = true
	return w.watcher.Add(filepath.Dir(path))
}

// addDirectory watches dir and all subdirectories.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// addNewDirectory starts watching a directory created under a watched tree.
// It reports whether path was such a directory.
func (w *Watcher) addNewDirectory(path string) bool {
	if !w.isWatchedDir(path) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if w.hidden(path) {
		return true
	}
	if err := w.addDirectory(path); err != nil {
		w.logger.Warn("failed to watch new directory", "path", path, "error", err)
	}
	return true
}

// isWatchedDir reports whether path lies inside a watched directory tree.
func (w *Watcher) isWatchedDir(path string) bool {
	for _, dir := range w.dirs {
		if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// shouldProcess reports whether event should trigger the callback.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	if !w.isWatchedDir(name) {
		// Sibling of a watched file in the same directory.
		return false
	}
	if w.hidden(name) {
		return false
	}
	return w.hasValidExtension(filepath.Ext(name))
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

func (w *Watcher) hasValidExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, valid := range w.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}
