package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/blendboard/internal/catalog"
)

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func TestWatcherEmitsOnlyOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	write := func(label string) {
		doc := "pages:\n  - id: home\n    entries:\n      - id: a\n        label: " + label + "\n"
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("first")

	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	evt := nextEvent(t, w)
	if evt.Err != nil || evt.Kind != KindCatalog {
		t.Fatalf("unexpected first event %+v", evt)
	}
	if got := evt.Data.(catalog.Catalog).Pages[0].Entries[0].Label; got != "first" {
		t.Fatalf("expected first label, got %q", got)
	}

	time.Sleep(50 * time.Millisecond)
	select {
	case evt := <-w.Events():
		t.Fatalf("expected no event for unchanged file, got %+v", evt)
	default:
	}

	write("second")
	evt = nextEvent(t, w)
	if got := evt.Data.(catalog.Catalog).Pages[0].Entries[0].Label; got != "second" {
		t.Fatalf("expected second label, got %q", got)
	}
}

func TestWatcherReportsLoadErrors(t *testing.T) {
	boom := errors.New("boom")
	w := newWatcher("ignored", 10*time.Millisecond, func(string) (catalog.Catalog, error) {
		return catalog.Catalog{}, boom
	})
	evt := nextEvent(t, w)
	if !errors.Is(evt.Err, boom) {
		t.Fatalf("expected load error, got %v", evt.Err)
	}
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestWatcherReemitsContentAfterLoadError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	w := newWatcher("ignored", 10*time.Millisecond, func(string) (catalog.Catalog, error) {
		if calls.Add(1) == 2 {
			return catalog.Catalog{}, boom
		}
		return catalog.Default(), nil
	})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if evt := nextEvent(t, w); evt.Err != nil {
		t.Fatalf("expected good first load, got %v", evt.Err)
	}
	if evt := nextEvent(t, w); !errors.Is(evt.Err, boom) {
		t.Fatalf("expected load error, got %v", evt.Err)
	}
	evt := nextEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("expected recovery event, got %v", evt.Err)
	}
	if _, ok := evt.Data.(catalog.Catalog); !ok {
		t.Fatalf("expected catalog data on recovery, got %T", evt.Data)
	}
}

func TestWatcherClosesEventsAfterStop(t *testing.T) {
	w := newWatcher("ignored", 10*time.Millisecond, func(string) (catalog.Catalog, error) {
		return catalog.Default(), nil
	})
	nextEvent(t, w)
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			for range w.Events() {
			}
		}
	case <-time.After(time.Second):
		t.Fatalf("expected events channel to close")
	}
}

func TestThrottleSpacesReads(t *testing.T) {
	ctx := context.Background()
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	if !th.wait(ctx) || !th.wait(ctx) {
		t.Fatalf("expected both reads to proceed")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected second wait to block, elapsed %v", elapsed)
	}
	var nilThrottle *throttle
	if !nilThrottle.wait(ctx) || !newThrottle(0).wait(ctx) {
		t.Fatalf("expected zero throttles not to block")
	}
}

func TestThrottleStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	th := newThrottle(time.Hour)
	th.wait(ctx)
	cancel()
	if th.wait(ctx) {
		t.Fatalf("expected cancelled wait to report false")
	}
}
