// Package watch observes one directory for external changes and collapses
// bursts of notifications into a single refresh signal.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the window used to coalesce change bursts.
const DefaultDebounce = 100 * time.Millisecond

// Error reports a failure of the underlying notify facility.
type Error struct {
	Op   string // "init" or "retarget"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("watch %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Watcher watches a single directory, non-recursively. The notify callback
// runs on the watcher goroutine and must not block.
type Watcher struct {
	fsw      *fsnotify.Watcher
	notify   func()
	debounce time.Duration
	log      *zap.Logger

	mu   sync.Mutex
	path string

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New starts watching path. Each burst of raw events within the debounce
// window produces exactly one call to notify.
func New(path string, debounce time.Duration, notify func(), logger *zap.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if notify == nil {
		notify = func() {}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &Error{Op: "init", Path: path, Err: err}
	}
	if err := fsw.Add(path); err != nil {
		_ = fsw.Close()
		return nil, &Error{Op: "init", Path: path, Err: err}
	}

	w := &Watcher{
		fsw:      fsw,
		notify:   notify,
		debounce: debounce,
		log:      logger,
		path:     path,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Path returns the directory currently observed.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Watch switches the observed directory. It is a no-op when path is already
// watched. The new watch is added before the previous one is dropped so a
// failed switch keeps the old directory observed. Failing to drop the
// previous watch is logged and ignored.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if samePath(path, w.path) {
		return nil
	}

	if err := w.fsw.Add(path); err != nil {
		return &Error{Op: "retarget", Path: path, Err: err}
	}
	if err := w.fsw.Remove(w.path); err != nil {
		w.log.Warn("unwatch failed", zap.String("path", w.path), zap.Error(err))
	}

	w.log.Debug("watching", zap.String("path", path), zap.String("previous", w.path))
	w.path = path
	return nil
}

// Close stops the watcher goroutine and releases the notify handle.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	arm := func() {
		if fire != nil {
			return
		}
		if timer == nil {
			timer = time.NewTimer(w.debounce)
		} else {
			timer.Reset(w.debounce)
		}
		fire = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.log.Debug("change", zap.String("name", ev.Name), zap.Stringer("op", ev.Op))
			arm()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// The directory may have changed; refresh anyway.
			w.log.Warn("watch error", zap.String("path", w.Path()), zap.Error(err))
			arm()
		case <-fire:
			fire = nil
			w.notify()
		case <-w.done:
			return
		}
	}
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
