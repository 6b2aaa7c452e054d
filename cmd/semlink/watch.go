package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// inputWatcher reports content changes of a fixed set of input files.
// Parent directories are watched so editors that replace files by rename
// are still seen.
type inputWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	targets map[string]bool
	hashes  map[string]string
	pending map[string]bool
}

func newInputWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*inputWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	w := &inputWatcher{
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		targets:  make(map[string]bool),
		hashes:   make(map[string]string),
		pending:  make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.targets[abs] = true
		if h, err := fileHash(abs); err == nil {
			w.hashes[abs] = h
		}
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("Watching directory", "path", dir)
	}
	return w, nil
}

// Run calls onChange with the changed inputs after each quiet period until
// ctx is done. Errors from onChange are logged and watching continues.
func (w *inputWatcher) Run(ctx context.Context, onChange func(context.Context, []string) error) error {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			changed := w.flushPending()
			if len(changed) == 0 {
				continue
			}
			if err := onChange(ctx, changed); err != nil {
				w.logger.Error("Reconversion failed", "error", err)
			}
		}
	}
}

func (w *inputWatcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !w.targets[path] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.pending[path] = true
	w.logger.Debug("Input change detected", "path", path, "op", event.Op.String())
}

// flushPending returns the pending inputs whose content really changed.
func (w *inputWatcher) flushPending() []string {
	var changed []string
	for path := range w.pending {
		h, err := fileHash(path)
		if err != nil {
			// Mid-replace; the following Create event re-queues it
			w.logger.Debug("Input not readable", "path", path, "error", err)
			continue
		}
		if w.hashes[path] == h {
			continue
		}
		w.hashes[path] = h
		changed = append(changed, path)
	}
	clear(w.pending)
	slices.Sort(changed)
	return changed
}

// Close stops watching.
func (w *inputWatcher) Close() error {
	return w.watcher.Close()
}

func fileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
