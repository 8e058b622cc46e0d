package collection

// Hooks receives lifecycle notifications after each structural change. The
// index arguments are positions in the active list (the view while filtered).
type Hooks[T any] interface {
	OnAdd(item T, index int)
	OnInsertAt(item T, index int)
	OnRemove(item T, index int)
	OnMoveTo(item T, index int)
	OnSwap(a T, indexA int, b T, indexB int)
	OnSort()
	OnFilterState(filtered bool)
	OnTruncate()
}

// NopHooks implements Hooks with no-ops; embed it to pick individual callbacks.
type NopHooks[T any] struct{}

func (NopHooks[T]) OnAdd(T, int)           {}
func (NopHooks[T]) OnInsertAt(T, int)      {}
func (NopHooks[T]) OnRemove(T, int)        {}
func (NopHooks[T]) OnMoveTo(T, int)        {}
func (NopHooks[T]) OnSwap(T, int, T, int)  {}
func (NopHooks[T]) OnSort()                {}
func (NopHooks[T]) OnFilterState(bool)     {}
func (NopHooks[T]) OnTruncate()            {}

// HookFuncs adapts optional callbacks to Hooks. Nil fields are ignored.
type HookFuncs[T any] struct {
	Add         func(item T, index int)
	InsertAt    func(item T, index int)
	Remove      func(item T, index int)
	MoveTo      func(item T, index int)
	Swap        func(a T, indexA int, b T, indexB int)
	Sort        func()
	FilterState func(filtered bool)
	Truncate    func()
}

func (h HookFuncs[T]) OnAdd(item T, index int) {
	if h.Add != nil {
		h.Add(item, index)
	}
}

func (h HookFuncs[T]) OnInsertAt(item T, index int) {
	if h.InsertAt != nil {
		h.InsertAt(item, index)
	}
}

func (h HookFuncs[T]) OnRemove(item T, index int) {
	if h.Remove != nil {
		h.Remove(item, index)
	}
}

func (h HookFuncs[T]) OnMoveTo(item T, index int) {
	if h.MoveTo != nil {
		h.MoveTo(item, index)
	}
}

func (h HookFuncs[T]) OnSwap(a T, indexA int, b T, indexB int) {
	if h.Swap != nil {
		h.Swap(a, indexA, b, indexB)
	}
}

func (h HookFuncs[T]) OnSort() {
	if h.Sort != nil {
		h.Sort()
	}
}

func (h HookFuncs[T]) OnFilterState(filtered bool) {
	if h.FilterState != nil {
		h.FilterState(filtered)
	}
}

func (h HookFuncs[T]) OnTruncate() {
	if h.Truncate != nil {
		h.Truncate()
	}
}
