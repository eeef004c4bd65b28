package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/tabula/pkg/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v, want 200ms", cfg.Debounce)
	}
	if len(cfg.Extensions) != 4 {
		t.Errorf("Extensions count = %d, want 4", len(cfg.Extensions))
	}
	if !cfg.SkipHidden {
		t.Error("SkipHidden = false, want true")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.WatchConfig{Debounce: time.Second, Extensions: []string{".csv"}}, "a.csv", "b.yaml")

	if cfg.Debounce != time.Second {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".csv" {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if len(cfg.Paths) != 2 {
		t.Errorf("Paths = %v", cfg.Paths)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(&Config{}); err == nil {
		t.Error("expected an error without paths")
	}
	if _, err := New(&Config{Paths: []string{filepath.Join(t.TempDir(), "missing.json")}}); err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestWatcher_ShouldProcess(t *testing.T) {
	dir := t.TempDir()
	rows := filepath.Join(dir, "rows.json")
	if err := os.WriteFile(rows, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	defs := filepath.Join(dir, "defs")
	if err := os.Mkdir(defs, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Paths = []string{rows, defs}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "watched file write", event: fsnotify.Event{Name: rows, Op: fsnotify.Write}, want: true},
		{name: "watched file chmod", event: fsnotify.Event{Name: rows, Op: fsnotify.Chmod}},
		{name: "sibling of watched file", event: fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}},
		{name: "yaml in watched dir", event: fsnotify.Event{Name: filepath.Join(defs, "sheet.yaml"), Op: fsnotify.Create}, want: true},
		{name: "uppercase extension", event: fsnotify.Event{Name: filepath.Join(defs, "SHEET.YML"), Op: fsnotify.Write}, want: true},
		{name: "other extension", event: fsnotify.Event{Name: filepath.Join(defs, "notes.txt"), Op: fsnotify.Write}},
		{name: "hidden file", event: fsnotify.Event{Name: filepath.Join(defs, ".sheet.yaml.swp.yaml"), Op: fsnotify.Write}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcess(tt.event); got != tt.want {
				t.Errorf("shouldProcess(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_Watch_SingleFile(t *testing.T) {
	dir := t.TempDir()
	rows := filepath.Join(dir, "rows.json")
	if err := os.WriteFile(rows, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Paths = []string{rows}
	cfg.Debounce = 50 * time.Millisecond
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var mu sync.Mutex
	var changed []string
	done := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Watch(ctx, func(path string) error {
			mu.Lock()
			changed = append(changed, path)
			mu.Unlock()
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give the watcher a moment to start its loop.
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(rows, []byte(`[{"name":"Ana"}]`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("callback was not called")
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("Watch() returned %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(changed) == 0 || changed[0] != rows {
		t.Errorf("changed = %v, want [%s]", changed, rows)
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	w, err := New(&Config{Paths: []string{dir}, Debounce: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Watch(context.Background(), func(string) error { return nil })
	}()

	time.Sleep(20 * time.Millisecond)
	w.Stop()
	w.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Watch() returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after Stop()")
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d after Stop, want 0", got)
	}
}
