// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// VOCABULARY FILE WATCHER
// =============================================================================

// Watcher reloads a Catalog from its vocabulary file when the file changes.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	catalog  *Catalog
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	pending time.Time // zero when no reload is pending

	// OnReload is called after each reload attempt, from the watcher goroutine.
	OnReload func(err error)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher for path. Call Watch to start it.
func NewWatcher(c *Catalog, path string, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		catalog:  c,
		path:     abs,
		watcher:  fw,
		debounce: debounce,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for file changes.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	go w.processPending()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents records changes to the vocabulary file.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = time.Now()
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("VOCAB_WATCH_ERROR | path=%s error=%v", w.path, err)
		}
	}
}

// processPending reloads once the file has been quiet for the debounce window.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case now := <-ticker.C:
			w.mu.Lock()
			due := !w.pending.IsZero() && now.Sub(w.pending) >= w.debounce
			if due {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if due {
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	err := w.catalog.Load(w.path)
	if err != nil {
		w.logger.Printf("VOCAB_RELOAD_FAILED | path=%s error=%v", w.path, err)
	} else {
		w.logger.Printf("VOCAB_RELOADED | path=%s entries=%d", w.path, w.catalog.Len())
	}
	if w.OnReload != nil {
		w.OnReload(err)
	}
}
