package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	fsutil "github.com/kk-code-lab/wayfinder/internal/fs"
	"github.com/kk-code-lab/wayfinder/internal/logging"
)

// ErrDispatcherClosed is returned by Request once the dispatcher is closed.
var ErrDispatcherClosed = errors.New("scan dispatcher closed")

const scanResultBuffer = 64

// ScanDispatcher performs directory reads off the control goroutine.
type ScanDispatcher interface {
	// Request schedules a read of path tagged with token. It never blocks on
	// the read itself; exactly one DirectoryLoaded is delivered per accepted
	// request, in completion order.
	Request(path string, token uint64) error
	Results() <-chan DirectoryLoaded
	Close()
}

// DirectoryLoaded is the outcome of one scan. Err is set on failure.
type DirectoryLoaded struct {
	Path    string
	Token   uint64
	Entries []FileEntry
	Err     error
}

type readDirFunc func(path string) ([]FileEntry, error)

type asyncScanDispatcher struct {
	mu      sync.Mutex
	closed  bool
	done    chan struct{}
	results chan DirectoryLoaded
	read    readDirFunc
	log     logrus.FieldLogger
}

// NewAsyncScanDispatcher constructs the default goroutine-based dispatcher.
// Names matched by hide are left out of every listing.
func NewAsyncScanDispatcher(hide *fsutil.HideMatcher, logger logrus.FieldLogger) ScanDispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	read := func(path string) ([]FileEntry, error) {
		return fsutil.ReadDirectory(path, hide, func(name string, err error) {
			logger.WithError(err).WithField("name", name).Debug("skipping unreadable entry")
		})
	}
	return newAsyncScanDispatcher(read, logger)
}

func newAsyncScanDispatcher(read readDirFunc, logger logrus.FieldLogger) *asyncScanDispatcher {
	return &asyncScanDispatcher{
		done:    make(chan struct{}),
		results: make(chan DirectoryLoaded, scanResultBuffer),
		read:    read,
		log:     logger,
	}
}

func (d *asyncScanDispatcher) Request(path string, token uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	go func() {
		entries, err := d.scan(path)
		result := DirectoryLoaded{Path: path, Token: token, Entries: entries, Err: err}

		select {
		case d.results <- result:
		case <-d.done:
		}
	}()

	d.log.WithFields(logrus.Fields{"path": path, "token": token}).Debug("scan dispatched")
	return nil
}

func (d *asyncScanDispatcher) scan(path string) (entries []FileEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("scanning %s: %v", path, r)
		}
	}()
	return d.read(path)
}

func (d *asyncScanDispatcher) Results() <-chan DirectoryLoaded {
	return d.results
}

// Close rejects further requests and returns at once. Workers still reading
// finish on their own and drop their results.
func (d *asyncScanDispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.done)
}
