package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period after the last change before a rescan
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures a Watcher
type WatchOptions struct {
	Root        string
	Extensions  []string
	ExcludeDirs []string
	Debounce    time.Duration
}

// Watcher reruns a callback when source files under a root change
type Watcher struct {
	opts       WatchOptions
	extensions map[string]struct{}
	excludes   map[string]struct{}
	logger     *slog.Logger
}

// NewWatcher creates a watcher. A nil logger uses slog.Default().
func NewWatcher(opts WatchOptions, logger *slog.Logger) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		opts:       opts,
		extensions: make(map[string]struct{}, len(opts.Extensions)),
		excludes:   make(map[string]struct{}, len(opts.ExcludeDirs)),
		logger:     logger,
	}
	for _, ext := range opts.Extensions {
		w.extensions[ext] = struct{}{}
	}
	for _, dir := range opts.ExcludeDirs {
		w.excludes[dir] = struct{}{}
	}
	return w
}

// Run calls onChange once, then again after every debounced burst of
// source changes, until ctx is done. Calls never overlap. Errors from
// onChange are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.opts.Root); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.watchEvents(ctx, fsw, trigger)
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
				if err := onChange(ctx); err != nil && ctx.Err() == nil {
					w.logger.Error("rescan failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

func (w *Watcher) watchEvents(ctx context.Context, fsw *fsnotify.Watcher, trigger chan<- struct{}) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, ev) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.opts.Debounce, fire)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// relevant reports whether an event should trigger a rescan. New
// directories are added to the watch as a side effect.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}
	if w.inExcludedDir(ev.Name) {
		return false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fsw, ev.Name); err != nil {
				w.logger.Error("failed to watch directory", "path", ev.Name, "error", err)
			}
			return true
		}
	}

	_, ok := w.extensions[filepath.Ext(ev.Name)]
	return ok
}

func (w *Watcher) inExcludedDir(path string) bool {
	rel, err := filepath.Rel(w.opts.Root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if _, excluded := w.excludes[part]; excluded {
			return true
		}
	}
	return false
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to watch %s: %w", root, err)
			}
			w.logger.Error("skipping entry", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			if _, excluded := w.excludes[d.Name()]; excluded {
				return filepath.SkipDir
			}
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
