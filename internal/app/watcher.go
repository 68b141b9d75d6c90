package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchDebounce coalesces bursts of events (an editor save, a recursive
// delete) into one notification.
const watchDebounce = 200 * time.Millisecond

// DirWatcher reports changes to a single directory at a time.
type DirWatcher struct {
	fsWatcher *fsnotify.Watcher
	log       logrus.FieldLogger

	mu  sync.Mutex
	dir string

	changes   chan string
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDirWatcher starts a watcher with nothing watched yet.
func NewDirWatcher(logger logrus.FieldLogger) (*DirWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &DirWatcher{
		fsWatcher: fsWatcher,
		log:       logger,
		changes:   make(chan string, 1),
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch replaces the watched directory with dir.
func (w *DirWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fsWatcher.Remove(w.dir)
		w.dir = ""
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.dir = dir
	w.log.WithField("directory", dir).Debug("watching directory")
	return nil
}

// Dir returns the directory currently watched, or "" when none is.
func (w *DirWatcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Changes delivers the watched directory after it changed. At most one
// notification is buffered.
func (w *DirWatcher) Changes() <-chan string {
	return w.changes
}

func (w *DirWatcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			dir := w.Dir()
			if dir == "" {
				continue
			}
			select {
			case w.changes <- dir:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("fsnotify watcher error")

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *DirWatcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		if err := w.fsWatcher.Close(); err != nil {
			w.log.WithError(err).Warn("error closing fsnotify watcher")
		}
		w.wg.Wait()
	})
}
