package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/blendboard/internal/catalog"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCatalog Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher polls the catalog file at a fixed interval and publishes an event
// whenever its content changes. Load errors are published on every poll.
type Watcher struct {
	path     string
	interval time.Duration
	load     func(string) (catalog.Catalog, error)

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls path every interval.
func NewWatcher(path string, interval time.Duration) *Watcher {
	return newWatcher(path, interval, catalog.Load)
}

func newWatcher(path string, interval time.Duration, load func(string) (catalog.Catalog, error)) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		load:     load,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startCatalogPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current load
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startCatalogPoller() {
	throttle := newThrottle(w.interval / 2)
	var last string
	w.wg.Add(1)
	go w.poll(KindCatalog, func(ctx context.Context) (interface{}, bool, error) {
		if !throttle.wait(ctx) {
			return nil, false, nil
		}
		c, err := w.load(w.path)
		if err != nil {
			// Forget the fingerprint so the next good load is reported.
			last = ""
			return nil, true, err
		}
		fp := c.Fingerprint()
		if fp == last {
			return nil, false, nil
		}
		last = fp
		return c, true, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, bool, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, changed, err := fetch(w.ctx)
		if !changed {
			return w.ctx.Err() == nil
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
