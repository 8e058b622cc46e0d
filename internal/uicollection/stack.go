package uicollection

import (
	"fmt"
	"slices"

	"github.com/atomicstack/blendboard/internal/collection"
	"github.com/atomicstack/blendboard/internal/logging/events"
)

// StackEventKind identifies a view notification.
type StackEventKind int

const (
	ViewDismissed StackEventKind = iota
	ViewDeactivated
	ViewPushed
	ViewActivated
)

func (k StackEventKind) String() string {
	switch k {
	case ViewDismissed:
		return "view-dismissed"
	case ViewDeactivated:
		return "view-deactivated"
	case ViewPushed:
		return "view-pushed"
	case ViewActivated:
		return "view-activated"
	}
	return fmt.Sprintf("stack-event(%d)", int(k))
}

// StackChange describes one view notification.
type StackChange[T any] struct {
	Kind StackEventKind
	View T
}

// Stack is a UICollection that displays at most one member, the current
// view. Every other member is kept in the stash.
type Stack[T comparable] struct {
	*UICollection[T]

	provider   TransitionProvider[T]
	current    T
	hasCurrent bool

	// pending is the latest view requested, until its transition lands.
	pending    T
	hasPending bool

	viewListeners map[int]func(StackChange[T])
	nextViewID    int
}

// NewStack builds an empty stack with no active view. Views change through
// SyncTransition until SetTransition installs another provider.
func NewStack[T comparable](renderer Renderer[T], opts ...Option[T]) *Stack[T] {
	s := &Stack[T]{
		UICollection:  New(renderer, opts...),
		provider:      SyncTransition[T]{},
		viewListeners: make(map[int]func(StackChange[T])),
	}
	s.policy = policy[T]{
		active:  s.isCurrent,
		removed: s.forgetCurrent,
		cleared: s.clearCurrent,
	}
	return s
}

// SetTransition sets the provider used by the PushView family. A nil provider
// restores SyncTransition.
func (s *Stack[T]) SetTransition(p TransitionProvider[T]) {
	if p == nil {
		p = SyncTransition[T]{}
	}
	s.provider = p
}

// OnView registers fn for view notifications and returns a function that
// removes it.
func (s *Stack[T]) OnView(fn func(StackChange[T])) func() {
	id := s.nextViewID
	s.nextViewID++
	s.viewListeners[id] = fn
	return func() { delete(s.viewListeners, id) }
}

func (s *Stack[T]) dispatchView(kinds []StackEventKind, view T) {
	if len(s.viewListeners) == 0 {
		return
	}
	ids := make([]int, 0, len(s.viewListeners))
	for id := range s.viewListeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	s.scheduler.Schedule(func() {
		for _, kind := range kinds {
			for _, id := range ids {
				if fn, ok := s.viewListeners[id]; ok {
					fn(StackChange[T]{Kind: kind, View: view})
				}
			}
		}
	})
}

// Current returns the active view.
func (s *Stack[T]) Current() (T, bool) {
	return s.current, s.hasCurrent
}

func (s *Stack[T]) isCurrent(item T) bool {
	return s.hasCurrent && s.current == item
}

func (s *Stack[T]) isPending(item T) bool {
	return s.hasPending && s.pending == item
}

func (s *Stack[T]) dropPending() {
	var zero T
	s.pending = zero
	s.hasPending = false
}

func (s *Stack[T]) forgetCurrent(item T) {
	if s.isPending(item) {
		s.dropPending()
	}
	if s.isCurrent(item) {
		s.clearCurrent()
	}
}

func (s *Stack[T]) clearCurrent() {
	s.dropPending()
	if !s.hasCurrent {
		return
	}
	events.Stack.Cleared(s.name, s.label(s.current))
	var zero T
	s.current = zero
	s.hasCurrent = false
}

// target is the view the stack is heading to: the pending request if any,
// else the current view.
func (s *Stack[T]) target() (T, bool) {
	if s.hasPending {
		return s.pending, true
	}
	return s.current, s.hasCurrent
}

// PushView makes item the active view through the configured provider.
func (s *Stack[T]) PushView(item T) error {
	return s.push(item, s.provider)
}

// PushViewAt activates the member at index of the active list.
func (s *Stack[T]) PushViewAt(index int) error {
	item, ok := s.GetAt(index)
	if !ok {
		return collection.ErrNotMember
	}
	return s.PushView(item)
}

// PushViewHandle activates the member carrying handle h.
func (s *Stack[T]) PushViewHandle(h collection.Handle) error {
	item, ok := s.ItemOf(h)
	if !ok {
		return collection.ErrNotMember
	}
	return s.PushView(item)
}

// SetActiveView activates item synchronously regardless of the configured
// provider.
func (s *Stack[T]) SetActiveView(item T) error {
	return s.push(item, SyncTransition[T]{})
}

func (s *Stack[T]) push(item T, provider TransitionProvider[T]) error {
	if !s.Contains(item) {
		return collection.ErrNotMember
	}
	if to, ok := s.target(); ok && to == item {
		return nil
	}
	s.pending = item
	s.hasPending = true
	from := ""
	if s.hasCurrent {
		from = s.label(s.current)
	}
	events.Stack.Push(s.name, from, s.label(item))
	provider.PushView(Transition[T]{
		From:    s.current,
		HasFrom: s.hasCurrent,
		To:      item,
		Stage:   stage[T]{s: s},
	}, s.report)
	return nil
}

func (s *Stack[T]) report(view T, pushed bool) {
	events.Stack.Transition(s.name, s.label(view), pushed)
	if !pushed {
		if s.isCurrent(view) {
			var zero T
			s.current = zero
			s.hasCurrent = false
		}
		s.dispatchView([]StackEventKind{ViewDismissed, ViewDeactivated}, view)
		return
	}
	if s.isPending(view) {
		s.dropPending()
	}
	if !s.Contains(view) {
		return
	}
	s.current = view
	s.hasCurrent = true
	s.isolate(view)
	s.dispatchView([]StackEventKind{ViewPushed, ViewActivated}, view)
}

type stage[T comparable] struct {
	s *Stack[T]
}

func (g stage[T]) Unarchive(view T) {
	u := g.s.UICollection
	if !u.domReady() || !u.Contains(view) {
		return
	}
	u.container.AppendChild(u.wrapper(view))
}

func (g stage[T]) Archive(view T) {
	u := g.s.UICollection
	if !u.domReady() {
		return
	}
	if _, ok := u.known[view]; !ok {
		return
	}
	u.stash.AppendChild(u.wrapper(view))
}

func (g stage[T]) Outgoing(to T) (T, bool) {
	if g.s.hasCurrent && g.s.current != to {
		return g.s.current, true
	}
	var zero T
	return zero, false
}

func (g stage[T]) Pending(view T) bool {
	return g.s.isPending(view)
}

// isolate stashes every attached wrapper except view's, so a provider that
// left a stale view attached cannot show two at once.
func (s *Stack[T]) isolate(view T) {
	u := s.UICollection
	if !u.domReady() || !u.shown(view) {
		return
	}
	keep := u.wrapper(view)
	for _, child := range slices.Clone(u.container.Children()) {
		if child != keep {
			u.stash.AppendChild(child)
		}
	}
}
