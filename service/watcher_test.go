package service

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ludo-technologies/plaincheck/internal/testutil"
)

func TestWatcher_RerunsOnChange(t *testing.T) {
	root := testutil.CreateSourceTree(t, map[string]string{
		"src/App.jsx":               "<p>Hello there</p>",
		"node_modules/lib/index.js": "module.exports = 1",
	})

	var logs bytes.Buffer
	w := NewWatcher(WatchOptions{
		Root:        root,
		Extensions:  []string{".jsx", ".js"},
		ExcludeDirs: []string{"node_modules"},
		Debounce:    20 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(&logs, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs.Add(1)
			calls <- struct{}{}
			return nil
		})
	}()

	waitForCall(t, calls)

	if err := os.WriteFile(filepath.Join(root, "src", "App.jsx"), []byte("<p>Changed text</p>"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	waitForCall(t, calls)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if runs.Load() < 2 {
		t.Errorf("expected at least 2 runs, got %d", runs.Load())
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := NewWatcher(WatchOptions{Root: filepath.Join(t.TempDir(), "missing")}, nil)
	if err := w.Run(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWatcher_InExcludedDir(t *testing.T) {
	w := NewWatcher(WatchOptions{Root: "/repo", ExcludeDirs: []string{"node_modules", "dist"}}, nil)

	tests := []struct {
		path string
		want bool
	}{
		{"/repo/src/App.jsx", false},
		{"/repo/node_modules/x/index.js", true},
		{"/repo/src/dist/out.js", true},
	}
	for _, tt := range tests {
		if got := w.inExcludedDir(tt.path); got != tt.want {
			t.Errorf("inExcludedDir(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcher_RelevantEvents(t *testing.T) {
	root := t.TempDir()
	w := NewWatcher(WatchOptions{
		Root:        root,
		Extensions:  []string{".jsx", ".ts"},
		ExcludeDirs: []string{"dist"},
	}, nil)

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"write source", "src/App.jsx", fsnotify.Write, true},
		{"remove source", "src/api.ts", fsnotify.Remove, true},
		{"chmod only", "src/App.jsx", fsnotify.Chmod, false},
		{"other extension", "report.json", fsnotify.Write, false},
		{"uppercase extension", "src/Legacy.JSX", fsnotify.Write, false},
		{"excluded dir", "dist/App.jsx", fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := fsnotify.Event{Name: filepath.Join(root, tt.path), Op: tt.op}
			if got := w.relevant(nil, ev); got != tt.want {
				t.Errorf("relevant(%s %s) = %v, want %v", tt.op, tt.path, got, tt.want)
			}
		})
	}
}

func waitForCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher callback")
	}
}
