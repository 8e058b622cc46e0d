// Package uicollection mirrors a collection.Collection onto a dom container.
//
// Every structural change of the underlying collection is applied to the
// container as the smallest node move that keeps the container's child order
// equal to the active list. Members that are not displayed are parked in an
// off-tree stash fragment. Listener notifications are delivered through a
// Scheduler after the node changes have been applied.
package uicollection

import (
	"fmt"
	"iter"
	"slices"

	"github.com/atomicstack/blendboard/internal/collection"
	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/atomicstack/blendboard/internal/logging/events"
)

// EventKind identifies a listener notification.
type EventKind int

const (
	ItemAdded EventKind = iota
	ItemRemoved
	FilterChanged
	Truncated
)

func (k EventKind) String() string {
	switch k {
	case ItemAdded:
		return "item-added"
	case ItemRemoved:
		return "item-removed"
	case FilterChanged:
		return "filter-changed"
	case Truncated:
		return "truncated"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Change describes one notification. Index is the active-list position the
// item had (removal) or got (addition); Filtered carries the new filter state.
type Change[T any] struct {
	Kind     EventKind
	Item     T
	Index    int
	Filtered bool
}

// Listener receives change notifications.
type Listener[T any] func(Change[T])

// Option configures a UICollection.
type Option[T comparable] func(*UICollection[T])

// WithName labels trace entries.
func WithName[T comparable](name string) Option[T] {
	return func(u *UICollection[T]) { u.name = name }
}

// WithScheduler routes listener notifications through s.
func WithScheduler[T comparable](s Scheduler) Option[T] {
	return func(u *UICollection[T]) {
		if s != nil {
			u.scheduler = s
		}
	}
}

// WithLabel sets how items are described in trace entries.
func WithLabel[T comparable](label func(T) string) Option[T] {
	return func(u *UICollection[T]) {
		if label != nil {
			u.label = label
		}
	}
}

// policy lets specialisations decide which members are shown and observe
// removals before listeners do.
type policy[T comparable] struct {
	active  func(T) bool
	removed func(T)
	cleared func()
}

// UICollection is a Collection whose members are rendered into a container.
type UICollection[T comparable] struct {
	name      string
	items     *collection.Collection[T]
	renderer  Renderer[T]
	scheduler Scheduler
	label     func(T) string
	policy    policy[T]

	container *dom.Node
	stash     *dom.Node
	mounted   bool

	layoutDepth int
	passes      int

	known     map[T]collection.Handle
	elements  map[collection.Handle]*dom.Node
	owners    map[*dom.Node]collection.Handle
	listeners map[int]Listener[T]
	nextID    int
}

// New builds an empty, unmounted UICollection rendering through renderer.
func New[T comparable](renderer Renderer[T], opts ...Option[T]) *UICollection[T] {
	u := &UICollection[T]{
		name:      "collection",
		renderer:  renderer,
		scheduler: Immediate{},
		label:     func(item T) string { return fmt.Sprint(item) },
		stash:     dom.NewFragment(),
		known:     make(map[T]collection.Handle),
		elements:  make(map[collection.Handle]*dom.Node),
		owners:    make(map[*dom.Node]collection.Handle),
		listeners: make(map[int]Listener[T]),
	}
	u.policy = policy[T]{active: func(T) bool { return true }}
	for _, opt := range opts {
		opt(u)
	}
	// New only fails on seed errors and there is no seed here.
	u.items, _ = collection.New[T](hooks[T]{u: u})
	return u
}

// Subscribe registers fn and returns a function that removes it.
func (u *UICollection[T]) Subscribe(fn Listener[T]) func() {
	id := u.nextID
	u.nextID++
	u.listeners[id] = fn
	return func() { delete(u.listeners, id) }
}

func (u *UICollection[T]) dispatch(change Change[T]) {
	if len(u.listeners) == 0 {
		return
	}
	ids := make([]int, 0, len(u.listeners))
	for id := range u.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	u.scheduler.Schedule(func() {
		for _, id := range ids {
			if fn, ok := u.listeners[id]; ok {
				fn(change)
			}
		}
	})
}

// Name returns the trace label.
func (u *UICollection[T]) Name() string {
	return u.name
}

// Container returns the mounted container, or nil.
func (u *UICollection[T]) Container() *dom.Node {
	return u.container
}

// Stash returns the fragment holding members that are not displayed.
func (u *UICollection[T]) Stash() *dom.Node {
	return u.stash
}

// Mounted reports whether Mount has been called.
func (u *UICollection[T]) Mounted() bool {
	return u.mounted
}

// Mount attaches the collection to container and performs the first layout.
func (u *UICollection[T]) Mount(container *dom.Node) {
	if container == nil {
		return
	}
	u.container = container
	u.mounted = true
	u.PerformLayout()
}

// PerformLayout re-attaches every member in active-list order and stashes the
// rest. It does nothing before Mount or inside WithLayoutDisabled.
func (u *UICollection[T]) PerformLayout() {
	if !u.domReady() {
		return
	}
	u.passes++
	attached, stashed := 0, 0
	for _, item := range u.items.AllItems() {
		w := u.wrapper(item)
		if u.shown(item) {
			u.container.AppendChild(w)
			attached++
			continue
		}
		u.stash.AppendChild(w)
		stashed++
	}
	events.Collection.Layout(u.name, attached, stashed)
}

// WithLayoutDisabled runs fn with incremental node updates off and performs
// a single layout pass afterwards, also when fn panics.
func (u *UICollection[T]) WithLayoutDisabled(fn func()) {
	u.layoutDepth++
	defer func() {
		u.layoutDepth--
		u.PerformLayout()
	}()
	fn()
}

func (u *UICollection[T]) domReady() bool {
	return u.mounted && u.layoutDepth == 0
}

func (u *UICollection[T]) shown(item T) bool {
	return u.items.Contains(item) && u.policy.active(item)
}

// element renders item once and records the node for reverse lookups.
func (u *UICollection[T]) element(item T) *dom.Node {
	h, ok := u.known[item]
	if !ok {
		h, _ = u.items.HandleOf(item)
		u.known[item] = h
	}
	if el, ok := u.elements[h]; ok {
		return el
	}
	el := u.renderer.RenderItem(item)
	u.elements[h] = el
	u.owners[el] = h
	return el
}

func (u *UICollection[T]) wrapper(item T) *dom.Node {
	el := u.element(item)
	if w := u.renderer.WrapperOf(item); w != nil {
		if w != el {
			u.owners[w] = u.known[item]
		}
		return w
	}
	return el
}

// place positions item's wrapper so it precedes the wrapper of the active
// item following index, appending when there is none in the container.
func (u *UICollection[T]) place(item T, index int) {
	w := u.wrapper(item)
	if !u.shown(item) {
		u.stash.AppendChild(w)
		return
	}
	var ref *dom.Node
	if next, ok := collection.Successor(index, u.items.Count()); ok {
		if sibling, found := u.items.GetAt(next); found {
			if sw := u.wrapper(sibling); sw.Parent() == u.container {
				ref = sw
			}
		}
	}
	if err := u.container.InsertBefore(w, ref); err != nil {
		u.container.AppendChild(w)
	}
}

// release drops the node bookkeeping of a departed member.
func (u *UICollection[T]) release(item T) {
	h, ok := u.known[item]
	if !ok {
		return
	}
	delete(u.known, item)
	el, rendered := u.elements[h]
	if !rendered {
		return
	}
	w := u.renderer.WrapperOf(item)
	u.renderer.RemoveElement(item)
	for _, n := range []*dom.Node{el, w} {
		if n == nil {
			continue
		}
		n.Remove()
		delete(u.owners, n)
	}
	delete(u.elements, h)
}

// ItemForElement resolves the member that owns node or one of its ancestors.
func (u *UICollection[T]) ItemForElement(node *dom.Node) (T, bool) {
	var zero T
	for n := node; n != nil; n = n.Parent() {
		h, ok := u.owners[n]
		if !ok {
			continue
		}
		item, found := u.items.ItemOf(h)
		if !found {
			return zero, false
		}
		return item, true
	}
	return zero, false
}

// ElementFor returns the rendered node of item, if any.
func (u *UICollection[T]) ElementFor(item T) (*dom.Node, bool) {
	h, ok := u.known[item]
	if !ok {
		return nil, false
	}
	el, ok := u.elements[h]
	return el, ok
}

// hooks adapts UICollection to collection.Hooks without exporting the
// callbacks.
type hooks[T comparable] struct {
	u *UICollection[T]
}

func (k hooks[T]) OnAdd(item T, index int) {
	u := k.u
	if h, ok := u.items.HandleOf(item); ok {
		u.known[item] = h
	}
	if u.domReady() {
		w := u.wrapper(item)
		if u.shown(item) {
			u.container.AppendChild(w)
		} else {
			u.stash.AppendChild(w)
		}
	}
	events.Collection.Add(u.name, u.label(item), index)
	u.dispatch(Change[T]{Kind: ItemAdded, Item: item, Index: index, Filtered: u.items.Filtered()})
}

func (k hooks[T]) OnInsertAt(item T, index int) {
	u := k.u
	if h, ok := u.items.HandleOf(item); ok {
		u.known[item] = h
	}
	if u.domReady() {
		u.place(item, index)
	}
	events.Collection.Insert(u.name, u.label(item), index)
	u.dispatch(Change[T]{Kind: ItemAdded, Item: item, Index: index, Filtered: u.items.Filtered()})
}

func (k hooks[T]) OnRemove(item T, index int) {
	u := k.u
	u.release(item)
	if u.policy.removed != nil {
		u.policy.removed(item)
	}
	events.Collection.Remove(u.name, u.label(item), index)
	u.dispatch(Change[T]{Kind: ItemRemoved, Item: item, Index: index, Filtered: u.items.Filtered()})
}

func (k hooks[T]) OnMoveTo(item T, index int) {
	u := k.u
	if u.domReady() {
		u.place(item, index)
	}
	events.Collection.Move(u.name, u.label(item), index)
}

func (k hooks[T]) OnSwap(a T, indexA int, b T, indexB int) {
	u := k.u
	if u.domReady() {
		wa, wb := u.wrapper(a), u.wrapper(b)
		if parent := wa.Parent(); parent == nil || parent != wb.Parent() {
			u.PerformLayout()
		} else if err := swapNodes(parent, wa, wb); err != nil {
			panic(fmt.Errorf("uicollection %s: swap %s and %s: %w", u.name, u.label(a), u.label(b), err))
		}
	}
	events.Collection.Swap(u.name, u.label(a), indexA, u.label(b), indexB)
}

// swapNodes exchanges two children of parent through a temporary marker.
func swapNodes(parent, wa, wb *dom.Node) error {
	marker := dom.NewElement("marker")
	if err := parent.InsertBefore(marker, wa); err != nil {
		return err
	}
	defer marker.Remove()
	if err := parent.InsertBefore(wa, wb); err != nil {
		return err
	}
	return parent.InsertBefore(wb, marker)
}

func (k hooks[T]) OnSort() {
	u := k.u
	u.PerformLayout()
	events.Collection.Sort(u.name)
}

func (k hooks[T]) OnFilterState(filtered bool) {
	u := k.u
	if u.domReady() {
		for _, item := range u.items.AllItems() {
			u.stash.AppendChild(u.wrapper(item))
		}
		u.PerformLayout()
	}
	events.Collection.Filter(u.name, filtered, u.items.Count())
	u.dispatch(Change[T]{Kind: FilterChanged, Index: -1, Filtered: filtered})
}

func (k hooks[T]) OnTruncate() {
	u := k.u
	departed := make([]T, 0, len(u.known))
	for item := range u.known {
		departed = append(departed, item)
	}
	slices.SortFunc(departed, func(a, b T) int {
		ha, hb := u.known[a], u.known[b]
		switch {
		case ha < hb:
			return -1
		case ha > hb:
			return 1
		}
		return 0
	})
	for _, item := range departed {
		u.release(item)
	}
	if u.policy.cleared != nil {
		u.policy.cleared()
	}
	events.Collection.Truncate(u.name, len(departed))
	u.dispatch(Change[T]{Kind: Truncated, Index: -1})
}

// reconcile releases nodes of items that left while hooks were silenced.
func (u *UICollection[T]) reconcile() {
	for item := range u.known {
		if _, ok := u.items.HandleOf(item); !ok {
			u.release(item)
			if u.policy.removed != nil {
				u.policy.removed(item)
			}
		}
	}
	for _, item := range u.items.AllItems() {
		if _, ok := u.known[item]; !ok {
			h, _ := u.items.HandleOf(item)
			u.known[item] = h
		}
	}
	u.PerformLayout()
}

// WithEventsSuspended runs fn without per-operation hooks or listener
// notifications, then brings the nodes back in line with one layout pass.
func (u *UICollection[T]) WithEventsSuspended(fn func()) {
	defer u.reconcile()
	u.items.WithEventsSuspended(fn)
}

// EventsEnabled reports whether hooks currently fire.
func (u *UICollection[T]) EventsEnabled() bool {
	return u.items.EventsEnabled()
}

func (u *UICollection[T]) Add(item T) (T, error) {
	return u.items.Add(item)
}

func (u *UICollection[T]) InsertAt(index int, item T) (T, error) {
	return u.items.InsertAt(index, item)
}

func (u *UICollection[T]) Remove(item T) (T, error) {
	return u.items.Remove(item)
}

func (u *UICollection[T]) RemoveAt(index int) (T, bool, error) {
	return u.items.RemoveAt(index)
}

func (u *UICollection[T]) RemoveFirst() (T, bool, error) {
	return u.items.RemoveFirst()
}

func (u *UICollection[T]) RemoveLast() (T, bool, error) {
	return u.items.RemoveLast()
}

func (u *UICollection[T]) MoveTo(index int, item T) error {
	return u.items.MoveTo(index, item)
}

func (u *UICollection[T]) MoveFirst(item T) error {
	return u.items.MoveFirst(item)
}

func (u *UICollection[T]) MoveLast(item T) error {
	return u.items.MoveLast(item)
}

func (u *UICollection[T]) Swap(a, b T) error {
	return u.items.Swap(a, b)
}

func (u *UICollection[T]) Sort(cmp func(a, b T) int) {
	u.items.Sort(cmp)
}

func (u *UICollection[T]) Filter(pred func(item T, index int) bool) {
	u.items.Filter(pred)
}

func (u *UICollection[T]) ClearFilter() {
	u.items.ClearFilter()
}

func (u *UICollection[T]) Filtered() bool {
	return u.items.Filtered()
}

func (u *UICollection[T]) Truncate() {
	u.items.Truncate()
}

func (u *UICollection[T]) Clear(clearFilterAlso bool) error {
	if err := u.items.Clear(clearFilterAlso); err != nil {
		return err
	}
	if clearFilterAlso {
		u.PerformLayout()
	}
	return nil
}

func (u *UICollection[T]) Count() int {
	return u.items.Count()
}

func (u *UICollection[T]) CountFunc(pred func(item T) bool) int {
	return u.items.CountFunc(pred)
}

func (u *UICollection[T]) Items() []T {
	return u.items.Items()
}

func (u *UICollection[T]) AllItems() []T {
	return u.items.AllItems()
}

func (u *UICollection[T]) All() iter.Seq2[int, T] {
	return u.items.All()
}

func (u *UICollection[T]) ForEach(fn func(item T, index int), ignoreFilter bool) {
	u.items.ForEach(fn, ignoreFilter)
}

func (u *UICollection[T]) GetAt(index int) (T, bool) {
	return u.items.GetAt(index)
}

func (u *UICollection[T]) GetFirst() (T, bool) {
	return u.items.GetFirst()
}

func (u *UICollection[T]) GetLast() (T, bool) {
	return u.items.GetLast()
}

func (u *UICollection[T]) IndexOf(item T) int {
	return u.items.IndexOf(item)
}

func (u *UICollection[T]) Contains(item T) bool {
	return u.items.Contains(item)
}

func (u *UICollection[T]) HandleOf(item T) (collection.Handle, bool) {
	return u.items.HandleOf(item)
}

func (u *UICollection[T]) ItemOf(h collection.Handle) (T, bool) {
	return u.items.ItemOf(h)
}
