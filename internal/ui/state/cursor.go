package state

// Viewport tracks the highlighted row and the first visible row of a list
// whose length is supplied by the caller.
type Viewport struct {
	Cursor int
	Offset int
}

// Home moves the cursor to the first row.
func (v *Viewport) Home(count int) bool {
	if count == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = 0
	return old != v.Cursor
}

// End moves the cursor to the last row.
func (v *Viewport) End(count int) bool {
	if count == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = count - 1
	return old != v.Cursor
}

// Step moves the cursor by delta, wrapping around either end.
func (v *Viewport) Step(delta, count int) bool {
	if count == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = ((v.Cursor+delta)%count + count) % count
	return old != v.Cursor
}

// PageUp moves the cursor up by one page.
func (v *Viewport) PageUp(maxVisible, count int) bool {
	return v.moveBy(-pageSize(maxVisible, count), count)
}

// PageDown moves the cursor down by one page.
func (v *Viewport) PageDown(maxVisible, count int) bool {
	return v.moveBy(pageSize(maxVisible, count), count)
}

func (v *Viewport) moveBy(delta, count int) bool {
	if count == 0 {
		v.Cursor = 0
		return false
	}
	old := v.Cursor
	v.Cursor = max(v.Cursor, 0) + delta
	v.Clamp(count)
	return v.Cursor != old
}

// Clamp pulls the cursor back into [0, count).
func (v *Viewport) Clamp(count int) {
	if count == 0 || v.Cursor < 0 {
		v.Cursor = 0
		return
	}
	if v.Cursor >= count {
		v.Cursor = count - 1
	}
}

func pageSize(maxVisible, total int) int {
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	return max(size, 1)
}

// EnsureVisible adjusts the offset so the cursor stays on screen.
func (v *Viewport) EnsureVisible(maxVisible, count int) {
	v.Clamp(count)
	if count == 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	maxOffset := max(count-maxVisible, 0)
	v.Offset = min(max(v.Offset, 0), maxOffset)
	if v.Cursor < v.Offset {
		v.Offset = v.Cursor
	}
	if upper := v.Offset + maxVisible - 1; v.Cursor > upper {
		v.Offset = min(max(v.Cursor-maxVisible+1, 0), maxOffset)
	}
}
