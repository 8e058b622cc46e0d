// Package collection implements an ordered, filterable list with positional
// mutation and lifecycle hooks.
//
// A Collection keeps a single backing order of entries. Each entry carries a
// Handle assigned when the item joins, so identity never depends on the
// item's position. While a filter is active a set of visible handles selects
// the view; the view is always read back from the backing order, which keeps
// it a subsequence of the items no matter which operations run while
// filtered.
//
// Positional arguments never fail: they are clamped with NormalizeIndex and,
// while filtered, mapped from view space to items space with TranslateIndex.
// Membership violations are returned as ErrNotMember.
package collection

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// Handle is the stable identity token of a collection member.
type Handle uint64

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

type entry[T comparable] struct {
	handle Handle
	item   T
}

// Collection is an ordered list of unique items with an optional filtered view.
type Collection[T comparable] struct {
	entries  []entry[T]
	handles  map[T]Handle
	byHandle map[Handle]T
	visible  map[Handle]struct{}
	filtered bool
	next     Handle

	hooks         Hooks[T]
	eventsEnabled bool

	index       map[Handle]int
	indexSynced bool
}

// New builds a collection that reports to hooks (which may be nil). Seed items
// are added with events suspended.
func New[T comparable](hooks Hooks[T], seed ...T) (*Collection[T], error) {
	c := &Collection[T]{
		handles:       make(map[T]Handle),
		byHandle:      make(map[Handle]T),
		visible:       make(map[Handle]struct{}),
		hooks:         hooks,
		eventsEnabled: true,
	}
	var err error
	c.WithEventsSuspended(func() {
		for _, item := range seed {
			if _, err = c.Add(item); err != nil {
				return
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("seed collection: %w", err)
	}
	return c, nil
}

// SetHooks replaces the hook receiver.
func (c *Collection[T]) SetHooks(hooks Hooks[T]) {
	c.hooks = hooks
}

// EventsEnabled reports whether hooks currently fire.
func (c *Collection[T]) EventsEnabled() bool {
	return c.eventsEnabled
}

// WithEventsSuspended runs fn with hooks silenced and restores the previous
// state afterwards, including when fn panics.
func (c *Collection[T]) WithEventsSuspended(fn func()) {
	prev := c.eventsEnabled
	c.eventsEnabled = false
	defer func() { c.eventsEnabled = prev }()
	fn()
}

func (c *Collection[T]) emit(fn func(Hooks[T])) {
	if !c.eventsEnabled || c.hooks == nil {
		return
	}
	fn(c.hooks)
}

func (c *Collection[T]) invalidate() {
	c.indexSynced = false
}

func (c *Collection[T]) reindex() {
	if c.indexSynced {
		return
	}
	c.index = make(map[Handle]int, c.Count())
	i := 0
	for _, e := range c.entries {
		if c.isVisible(e.handle) {
			c.index[e.handle] = i
			i++
		}
	}
	c.indexSynced = true
}

func (c *Collection[T]) isVisible(h Handle) bool {
	if !c.filtered {
		return true
	}
	_, ok := c.visible[h]
	return ok
}

// active returns the entries of the active list. The result must not be
// mutated when unfiltered because it aliases the backing order.
func (c *Collection[T]) active() []entry[T] {
	if !c.filtered {
		return c.entries
	}
	out := make([]entry[T], 0, len(c.visible))
	for _, e := range c.entries {
		if _, ok := c.visible[e.handle]; ok {
			out = append(out, e)
		}
	}
	return out
}

// viewPositions lists the backing positions of the visible entries.
func (c *Collection[T]) viewPositions() []int {
	out := make([]int, 0, len(c.visible))
	for i, e := range c.entries {
		if _, ok := c.visible[e.handle]; ok {
			out = append(out, i)
		}
	}
	return out
}

func (c *Collection[T]) position(h Handle) int {
	for i, e := range c.entries {
		if e.handle == h {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) admit(item T) error {
	if isNil(item) {
		return ErrNilItem
	}
	if _, ok := c.handles[item]; ok {
		return ErrDuplicate
	}
	return nil
}

func (c *Collection[T]) track(item T) Handle {
	c.next++
	h := c.next
	c.handles[item] = h
	c.byHandle[h] = item
	return h
}

func (c *Collection[T]) forget(e entry[T]) {
	delete(c.handles, e.item)
	delete(c.byHandle, e.handle)
	delete(c.visible, e.handle)
}

// member resolves item to its handle when it belongs to the active list.
func (c *Collection[T]) member(item T) (Handle, error) {
	h, ok := c.handles[item]
	if !ok || !c.isVisible(h) {
		return 0, ErrNotMember
	}
	return h, nil
}

// Add appends item. While filtered the item joins the view as well.
func (c *Collection[T]) Add(item T) (T, error) {
	if err := c.admit(item); err != nil {
		return item, err
	}
	h := c.track(item)
	c.entries = append(c.entries, entry[T]{handle: h, item: item})
	if c.filtered {
		c.visible[h] = struct{}{}
	}
	c.invalidate()
	index := c.Count() - 1
	c.emit(func(hk Hooks[T]) { hk.OnAdd(item, index) })
	return item, nil
}

// InsertAt places item at index in the active list. Requests beyond the last
// index become appends and report through OnAdd.
func (c *Collection[T]) InsertAt(index int, item T) (T, error) {
	pos, appendAtEnd := Placement(index, c.Count())
	if appendAtEnd {
		return c.Add(item)
	}
	if err := c.admit(item); err != nil {
		return item, err
	}
	target := pos
	if c.filtered {
		target = TranslateIndex(c.viewPositions(), pos, len(c.entries))
	}
	h := c.track(item)
	if c.filtered {
		c.visible[h] = struct{}{}
	}
	c.entries = slices.Insert(c.entries, target, entry[T]{handle: h, item: item})
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnInsertAt(item, pos) })
	return item, nil
}

// RemoveAt removes the item at index. ok is false when nothing lives there.
func (c *Collection[T]) RemoveAt(index int) (item T, ok bool, err error) {
	item, ok = c.GetAt(index)
	if !ok {
		return item, false, nil
	}
	if _, err = c.Remove(item); err != nil {
		return item, false, err
	}
	return item, true, nil
}

// RemoveFirst removes the first item of the active list.
func (c *Collection[T]) RemoveFirst() (T, bool, error) {
	return c.RemoveAt(0)
}

// RemoveLast removes the last item of the active list.
func (c *Collection[T]) RemoveLast() (T, bool, error) {
	return c.RemoveAt(c.Count() - 1)
}

// Remove drops item from the view and from the items.
func (c *Collection[T]) Remove(item T) (T, error) {
	h, err := c.member(item)
	if err != nil {
		return item, err
	}
	index := c.IndexOf(item)
	pos := c.position(h)
	e := c.entries[pos]
	c.entries = slices.Delete(c.entries, pos, pos+1)
	c.forget(e)
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnRemove(item, index) })
	return item, nil
}

// MoveTo repositions item at index of the active list.
func (c *Collection[T]) MoveTo(index int, item T) error {
	h, err := c.member(item)
	if err != nil {
		return err
	}
	norm := NormalizeIndex(index, LastIndex(c.Count()))
	pos := c.position(h)
	e := c.entries[pos]
	c.entries = slices.Delete(c.entries, pos, pos+1)
	target := norm
	if c.filtered {
		target = pos
		if positions := c.viewPositions(); len(positions) > 0 {
			target = TranslateIndex(positions, norm, len(c.entries))
		}
	}
	c.entries = slices.Insert(c.entries, target, e)
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnMoveTo(item, norm) })
	return nil
}

// MoveFirst moves item to the head of the active list.
func (c *Collection[T]) MoveFirst(item T) error {
	return c.MoveTo(0, item)
}

// MoveLast moves item to the tail of the active list.
func (c *Collection[T]) MoveLast(item T) error {
	return c.MoveTo(c.Count()-1, item)
}

// Swap exchanges the positions of a and b.
func (c *Collection[T]) Swap(a, b T) error {
	ha, err := c.member(a)
	if err != nil {
		return err
	}
	hb, err := c.member(b)
	if err != nil {
		return err
	}
	ia, ib := c.IndexOf(a), c.IndexOf(b)
	pa, pb := c.position(ha), c.position(hb)
	c.entries[pa], c.entries[pb] = c.entries[pb], c.entries[pa]
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnSwap(a, ia, b, ib) })
	return nil
}

// Sort orders the items with cmp (negative, zero, positive). The sort is
// stable and the view follows the new order.
func (c *Collection[T]) Sort(cmp func(a, b T) int) {
	if c.Count() == 0 {
		return
	}
	slices.SortStableFunc(c.entries, func(x, y entry[T]) int {
		return cmp(x.item, y.item)
	})
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnSort() })
}

// Filter narrows the active list to the items accepted by pred. Successive
// filters intersect.
func (c *Collection[T]) Filter(pred func(item T, index int) bool) {
	next := make(map[Handle]struct{})
	for i, e := range c.active() {
		if pred(e.item, i) {
			next[e.handle] = struct{}{}
		}
	}
	c.visible = next
	c.filtered = true
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnFilterState(true) })
}

// ClearFilter makes every item visible again.
func (c *Collection[T]) ClearFilter() {
	c.visible = make(map[Handle]struct{})
	c.filtered = false
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnFilterState(false) })
}

// Filtered reports whether a filter is active.
func (c *Collection[T]) Filtered() bool {
	return c.filtered
}

// Truncate drops every item without per-item notifications.
func (c *Collection[T]) Truncate() {
	c.entries = nil
	c.handles = make(map[T]Handle)
	c.byHandle = make(map[Handle]T)
	c.visible = make(map[Handle]struct{})
	c.invalidate()
	c.emit(func(hk Hooks[T]) { hk.OnTruncate() })
}

// Clear removes the visible items one by one. With clearFilterAlso the filter
// is dropped afterwards without a filter-state notification.
func (c *Collection[T]) Clear(clearFilterAlso bool) error {
	for c.Count() > 0 {
		if _, _, err := c.RemoveFirst(); err != nil {
			return err
		}
	}
	if clearFilterAlso {
		c.WithEventsSuspended(c.ClearFilter)
	}
	return nil
}

// Count returns the length of the active list.
func (c *Collection[T]) Count() int {
	if c.filtered {
		return len(c.visible)
	}
	return len(c.entries)
}

// CountFunc counts the active items matching pred.
func (c *Collection[T]) CountFunc(pred func(item T) bool) int {
	n := 0
	for _, e := range c.active() {
		if pred(e.item) {
			n++
		}
	}
	return n
}

// Items returns a copy of the active list.
func (c *Collection[T]) Items() []T {
	return itemsOf(c.active())
}

// AllItems returns a copy of every item, ignoring the filter.
func (c *Collection[T]) AllItems() []T {
	return itemsOf(c.entries)
}

func itemsOf[T comparable](entries []entry[T]) []T {
	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

// All yields the active list with its indexes. The sequence walks a snapshot,
// so the body may mutate the collection.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	items := c.Items()
	return func(yield func(int, T) bool) {
		for i, item := range items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// ForEach calls fn for each active item, or for every item when ignoreFilter
// is set.
func (c *Collection[T]) ForEach(fn func(item T, index int), ignoreFilter bool) {
	items := c.Items()
	if ignoreFilter {
		items = c.AllItems()
	}
	for i, item := range items {
		fn(item, i)
	}
}

// GetAt returns the active item at index. Negative indexes count from the
// end and clamp to the head; indexes past the tail are not found.
func (c *Collection[T]) GetAt(index int) (T, bool) {
	var zero T
	count := c.Count()
	if count == 0 {
		return zero, false
	}
	if index < 0 {
		index += count
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		return zero, false
	}
	if !c.filtered {
		return c.entries[index].item, true
	}
	return c.active()[index].item, true
}

// GetFirst returns the head of the active list.
func (c *Collection[T]) GetFirst() (T, bool) {
	return c.GetAt(0)
}

// GetLast returns the tail of the active list.
func (c *Collection[T]) GetLast() (T, bool) {
	return c.GetAt(-1)
}

// IndexOf returns the active-list position of item, or -1.
func (c *Collection[T]) IndexOf(item T) int {
	h, ok := c.handles[item]
	if !ok {
		return -1
	}
	return c.IndexOfHandle(h)
}

// IndexOfHandle returns the active-list position of the member with handle h,
// or -1.
func (c *Collection[T]) IndexOfHandle(h Handle) int {
	c.reindex()
	if i, ok := c.index[h]; ok {
		return i
	}
	return -1
}

// Contains reports whether item is part of the active list.
func (c *Collection[T]) Contains(item T) bool {
	_, err := c.member(item)
	return err == nil
}

// HandleOf returns the handle assigned to item when it joined.
func (c *Collection[T]) HandleOf(item T) (Handle, bool) {
	h, ok := c.handles[item]
	return h, ok
}

// ItemOf resolves a handle back to its item.
func (c *Collection[T]) ItemOf(h Handle) (T, bool) {
	item, ok := c.byHandle[h]
	return item, ok
}
