package state

// Marks is a set of marked entry ids.
type Marks struct {
	ids map[string]struct{}
}

// Has reports whether id is marked.
func (m *Marks) Has(id string) bool {
	_, ok := m.ids[id]
	return ok
}

// Toggle flips the mark on id and reports the new state.
func (m *Marks) Toggle(id string) bool {
	if m.ids == nil {
		m.ids = make(map[string]struct{})
	}
	if _, ok := m.ids[id]; ok {
		delete(m.ids, id)
		return false
	}
	m.ids[id] = struct{}{}
	return true
}

// Drop unmarks id.
func (m *Marks) Drop(id string) {
	delete(m.ids, id)
}

// Clear unmarks everything.
func (m *Marks) Clear() {
	clear(m.ids)
}

// Len returns the number of marks.
func (m *Marks) Len() int {
	return len(m.ids)
}

// Other returns a marked id different from id, if any.
func (m *Marks) Other(id string) (string, bool) {
	for marked := range m.ids {
		if marked != id {
			return marked, true
		}
	}
	return "", false
}
