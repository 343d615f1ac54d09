// Package watch implements the drop-folder ingest: image files appearing
// in a watched directory are automatically submitted to the inventory,
// mirroring the add-item screen's zero-input flow. Results are delivered
// through a callback so the TUI can refresh like after any other add.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"diyfinder/internal/logging"
)

// settleDelay gives the writing process time to finish the file before
// we read it. fsnotify reports Create as soon as the file exists.
const settleDelay = 300 * time.Millisecond

// maxConcurrentIngests bounds parallel uploads from a burst of drops.
const maxConcurrentIngests = 2

// Ingester submits one image file to the inventory.
type Ingester interface {
	Ingest(ctx context.Context, path string) error
}

// Result reports one completed ingest attempt.
type Result struct {
	Path string
	Err  error
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	EventsSeen    int
	Ingested      int
	Skipped       int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// Watcher monitors one directory for new image files.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	dir      string
	ingester Ingester
	notify   func(Result)
	log      *zap.Logger

	debounce    map[string]time.Time
	debounceDur time.Duration

	running bool
	cancel  context.CancelFunc
	doneCh  chan struct{}
	stats   Stats
}

// New creates a watcher for dir. notify is invoked from watcher
// goroutines after every ingest attempt; it must be safe for concurrent
// use (tea.Program.Send is).
func New(dir string, ingester Ingester, notify func(Result)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:         fsw,
		dir:         dir,
		ingester:    ingester,
		notify:      notify,
		log:         logging.Get("watch"),
		debounce:    make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
	}, nil
}

// Start begins watching. Non-blocking; events are handled in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	if err := w.fsw.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.log.Info("watching drop folder", zap.String("dir", w.dir))

	go w.run(ctx)
	return nil
}

// Stop shuts the watcher down and waits for in-flight ingests.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel, done := w.cancel, w.doneCh
	w.mu.Unlock()

	cancel()
	<-done
	_ = w.fsw.Close()
}

// Snapshot returns the current watcher activity stats.
func (w *Watcher) Snapshot() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentIngests)
	defer func() { _ = group.Wait() }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(gctx, group, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, group *errgroup.Group, event fsnotify.Event) {
	w.mu.Lock()
	w.stats.EventsSeen++
	w.stats.LastEventPath = event.Name
	w.stats.LastEventTime = time.Now()

	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		w.stats.Skipped++
		w.mu.Unlock()
		return
	}
	if !isImagePath(event.Name) {
		w.stats.Skipped++
		w.mu.Unlock()
		return
	}
	// Editors and file syncers fire Create+Write bursts for one file.
	if last, seen := w.debounce[event.Name]; seen && time.Since(last) < w.debounceDur {
		w.stats.Skipped++
		w.mu.Unlock()
		return
	}
	w.debounce[event.Name] = time.Now()
	w.mu.Unlock()

	path := event.Name
	group.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(settleDelay):
		}

		err := w.ingester.Ingest(ctx, path)

		w.mu.Lock()
		if err != nil {
			w.stats.Errors++
		} else {
			w.stats.Ingested++
		}
		w.mu.Unlock()

		if err != nil {
			w.log.Warn("ingest failed", zap.String("path", path), zap.Error(err))
		} else {
			w.log.Info("ingested", zap.String("path", path))
		}
		if w.notify != nil {
			w.notify(Result{Path: path, Err: err})
		}
		return nil
	})
}

func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}
