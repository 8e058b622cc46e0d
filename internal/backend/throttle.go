package backend

import (
	"context"
	"time"
)

// throttle spaces catalog reads so a slow file system or an editor writing
// the file in several steps is not hit on every tick.
type throttle struct {
	gap  time.Duration
	last time.Time
}

func newThrottle(gap time.Duration) *throttle {
	return &throttle{gap: max(gap, 0)}
}

// wait blocks until gap has passed since the previous read. It returns false
// when ctx ends first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.gap == 0 {
		return ctx.Err() == nil
	}
	if remaining := time.Until(t.last.Add(t.gap)); remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.last = time.Now()
	return true
}
