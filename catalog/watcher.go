// ABOUTME: Dataset file watcher with debounce and hot reload
// ABOUTME: Swaps the loaded dataset atomically when the file changes

package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/refritek/coldroom-analyzer/models"
)

// debounceWindow collapses editor write bursts into a single reload.
const debounceWindow = 500 * time.Millisecond

// Watcher monitors a dataset file and reloads it on change. Reloads are
// deduplicated through singleflight; a failed reload keeps the previous
// dataset in place.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*models.Dataset)
	sf       singleflight.Group
}

// NewWatcher creates a watcher for the dataset at path. onReload is
// invoked with each successfully loaded dataset.
func NewWatcher(path string, onReload func(*models.Dataset)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:     path,
		watcher:  fsw,
		onReload: onReload,
	}, nil
}

// Start blocks processing file events until the context is cancelled.
// Run it in its own goroutine.
func (w *Watcher) Start(ctx context.Context) {
	defer w.watcher.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Debounce: editors often emit several writes per save.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Dataset watcher error", "error", err)
		}
	}
}

// reload loads the dataset once per burst and hands it to the callback.
func (w *Watcher) reload() {
	_, err, _ := w.sf.Do(w.path, func() (interface{}, error) {
		ds, err := Load(w.path)
		if err != nil {
			return nil, err
		}
		w.onReload(ds)
		return nil, nil
	})
	if err != nil {
		slog.Error("Dataset reload failed; keeping previous dataset", "path", w.path, "error", err)
		return
	}
	slog.Info("Dataset reloaded", "path", w.path)
}
