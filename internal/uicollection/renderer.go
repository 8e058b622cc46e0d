package uicollection

import "github.com/atomicstack/blendboard/internal/dom"

// Renderer turns items into nodes. RenderItem is called at most once per
// member; RemoveElement releases whatever RenderItem produced.
type Renderer[T any] interface {
	RenderItem(item T) *dom.Node
	RemoveElement(item T)
	// WrapperOf returns the outermost node placed in the container for item,
	// or nil when the item has not been rendered.
	WrapperOf(item T) *dom.Node
}

// ElementRenderer caches one element per item and detaches it on removal.
type ElementRenderer[T comparable] struct {
	render  func(T) *dom.Node
	release func(T, *dom.Node)
	cache   map[T]*dom.Node
}

// NewElementRenderer wraps render. release, when non-nil, runs after the
// element has been detached.
func NewElementRenderer[T comparable](render func(T) *dom.Node, release func(T, *dom.Node)) *ElementRenderer[T] {
	return &ElementRenderer[T]{
		render:  render,
		release: release,
		cache:   make(map[T]*dom.Node),
	}
}

func (r *ElementRenderer[T]) RenderItem(item T) *dom.Node {
	if el, ok := r.cache[item]; ok {
		return el
	}
	el := r.render(item)
	if el == nil {
		el = dom.NewElement("div")
	}
	r.cache[item] = el
	return el
}

func (r *ElementRenderer[T]) WrapperOf(item T) *dom.Node {
	return r.cache[item]
}

func (r *ElementRenderer[T]) RemoveElement(item T) {
	el, ok := r.cache[item]
	if !ok {
		return
	}
	delete(r.cache, item)
	el.Remove()
	if r.release != nil {
		r.release(item, el)
	}
}

// Cached reports how many elements are alive.
func (r *ElementRenderer[T]) Cached() int {
	return len(r.cache)
}
