package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher monitors the loaded config file for changes on disk. The
// canonical configuration is immutable once validated, so a change only
// produces a restart-required notice in the log; nothing is reloaded.
type Watcher struct {
	path   string
	logger zerolog.Logger

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	debounce *time.Timer
	done     chan struct{}
}

// debounceDelay coalesces the event bursts editors produce on save.
const debounceDelay = 250 * time.Millisecond

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(path string, logger zerolog.Logger) *Watcher {
	return &Watcher{path: path, logger: logger}
}

// Start begins watching. The parent directory is watched rather than the
// file itself so rename-and-replace saves keep being observed.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}

	w.mu.Lock()
	w.fsw = fsw
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.run(fsw)
	return nil
}

func (w *Watcher) run(fsw *fsnotify.Watcher) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleNotice()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) scheduleNotice() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		w.logger.Warn().
			Str("path", w.path).
			Msg("configuration file changed on disk; restart required to apply")
	})
}

// Stop ends watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	fsw := w.fsw
	done := w.done
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.fsw = nil
	w.mu.Unlock()

	if fsw == nil {
		return
	}
	fsw.Close()
	<-done
}
