package wordlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tacenda/wordveil/internal/pkg/logger"
)

// Watcher reloads a wordlist file whenever it changes on disk and hands
// each successfully loaded generation to a callback. Reload failures are
// logged and the previous generation stays in effect.
type Watcher struct {
	path   string
	fsw    *fsnotify.Watcher
	onLoad func(*List)
	stop   chan struct{}
	done   chan struct{}
}

// NewWatcher watches path and calls onLoad with each reloaded list. The
// parent directory is watched rather than the file itself, so atomic
// replaces (write temp, rename over) keep being seen. onLoad runs on the
// watcher goroutine.
func NewWatcher(path string, onLoad func(*List)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wordlist path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch wordlist directory: %w", err)
	}

	w := &Watcher{
		path:   abs,
		fsw:    fsw,
		onLoad: onLoad,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Error("Wordlist watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	list, entryErrors, err := LoadWithErrors(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Editors rename the file away before writing the
			// replacement; the create event follows.
			logger.Debug("Wordlist file gone, keeping previous", "path", w.path)
			return
		}
		logger.Warn("Failed to reload wordlist, keeping previous", "path", w.path, "error", err)
		return
	}
	for _, entryErr := range entryErrors {
		logger.Warn("Skipping invalid wordlist entry", "path", w.path, "error", entryErr)
	}

	logger.Info("Wordlist reloaded",
		"path", w.path,
		"revision", list.Revision,
		"word_count", len(list.Entries))
	w.onLoad(list)
}

// Close stops the watcher. No onLoad call happens after Close returns.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.fsw.Close()
	<-w.done
	return err
}
