package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/style-browser/internal/library"
	"github.com/atomicstack/style-browser/internal/logging/events"
)

const (
	// DefaultDebounce collapses the burst of events editors produce when
	// saving a file.
	DefaultDebounce = 200 * time.Millisecond
	// minReloadInterval bounds how often the file is re-parsed.
	minReloadInterval = 250 * time.Millisecond
)

// Event conveys a freshly parsed library or the error that prevented it.
type Event struct {
	Snapshot library.Snapshot
	Err      error
}

// Watcher reloads a library file whenever it changes on disk and publishes
// the result.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching the library file at path. The current content
// is published immediately, followed by one event per settled change.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	resolved, err := library.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	// Watch the directory so atomic saves (write to temp, rename over)
	// are still seen after the original inode disappears.
	dir := filepath.Dir(resolved)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     resolved,
		debounce: debounce,
		fs:       fsw,
		throttle: newThrottle(minReloadInterval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.loop()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher and releases the underlying file watch.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) emit() bool {
	if !w.throttle.wait(w.ctx) {
		return false
	}
	snap, err := library.Load(w.path)
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- Event{Snapshot: snap, Err: err}:
		return true
	}
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	defer w.fs.Close()

	if !w.emit() {
		return
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			events.Library.Change(evt.Name, evt.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if !w.emit() {
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Library.Error(w.path, err)
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Clean(evt.Name) == w.path
}
