package uicollection

// Stage is the part of a stack a transition is allowed to touch.
type Stage[T any] interface {
	// Unarchive attaches view to the container.
	Unarchive(view T)
	// Archive moves view to the stash.
	Archive(view T)
	// Outgoing returns the current view, read when called, unless it is to.
	Outgoing(to T) (T, bool)
	// Pending reports whether view is still the latest view requested.
	Pending(view T) bool
}

// Transition describes one view change. From and HasFrom are read when the
// change is requested; providers that defer work ask the Stage instead.
type Transition[T any] struct {
	From    T
	HasFrom bool
	To      T
	Stage   Stage[T]
}

// TransitionProvider carries out view changes. It must call report once for
// the outgoing view (pushed=false) when there is one, and once for the
// incoming view (pushed=true), in that order.
type TransitionProvider[T any] interface {
	PushView(t Transition[T], report func(view T, pushed bool))
}

// SyncTransition swaps views immediately without animation.
type SyncTransition[T any] struct{}

func (SyncTransition[T]) PushView(t Transition[T], report func(view T, pushed bool)) {
	t.Stage.Unarchive(t.To)
	if from, ok := t.Stage.Outgoing(t.To); ok {
		t.Stage.Archive(from)
		report(from, false)
	}
	report(t.To, true)
}

// ScheduledTransition performs the same steps as SyncTransition, one
// scheduler callback per step. Steps read the stack when they run, so a push
// superseded by a later one before the scheduler drains is dropped.
type ScheduledTransition[T any] struct {
	Scheduler Scheduler
}

func (p ScheduledTransition[T]) PushView(t Transition[T], report func(view T, pushed bool)) {
	s := p.Scheduler
	if s == nil {
		s = Immediate{}
	}
	live := false
	s.Schedule(func() {
		live = t.Stage.Pending(t.To)
		if live {
			t.Stage.Unarchive(t.To)
		}
	})
	s.Schedule(func() {
		if !live {
			return
		}
		if from, ok := t.Stage.Outgoing(t.To); ok {
			t.Stage.Archive(from)
			report(from, false)
		}
	})
	s.Schedule(func() {
		if live {
			report(t.To, true)
		}
	})
}
