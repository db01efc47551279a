package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SiteMapWatcher calls onChange after the site map file has been written,
// created or replaced, once no further event arrived within the debounce
// window.
//
// The parent directory is watched rather than the file itself, because
// editors and deployment tools usually replace files by renaming.
type SiteMapWatcher struct {
	path     string
	debounce time.Duration
	onChange func()

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSiteMapWatcher prepares a watcher for path. Call Start to begin watching.
func NewSiteMapWatcher(path string, debounce time.Duration, onChange func()) (*SiteMapWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid site map path '%s': %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &SiteMapWatcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		watcher:  watcher,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The watcher stops when ctx is cancelled or Stop is
// called.
func (w *SiteMapWatcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *SiteMapWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
	w.wg.Wait()
}

func (w *SiteMapWatcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			slog.Info("Site map changed, reloading", "path", w.path)
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Site map watcher error", "error", err)
		}
	}
}
