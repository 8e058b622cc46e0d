package ui

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/blendboard/internal/catalog"
	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/atomicstack/blendboard/internal/theme"
	"github.com/atomicstack/blendboard/internal/uicollection"
	uistate "github.com/atomicstack/blendboard/internal/ui/state"
)

var (
	ErrUnknownPage  = errors.New("unknown page")
	ErrUnknownEntry = errors.New("unknown entry")
	ErrNoSelection  = errors.New("no entry selected")
)

const (
	attrEntryID = "data-id"
	attrPageID  = "data-page"
	classLabel  = "label"
	classDetail = "detail"
	classList   = "list"
	classPage   = "page"
)

// Entry is one row of a page.
type Entry struct {
	ID     string
	Label  string
	Detail string
	Target string
}

func entryFromCatalog(e catalog.Entry) *Entry {
	return &Entry{ID: e.ID, Label: e.Label, Detail: e.Detail, Target: e.Target}
}

// Page is a titled list of entries mirrored into a section element.
type Page struct {
	ID    string
	Title string

	node    *dom.Node
	heading *dom.Node
	list    *uicollection.UICollection[*Entry]
	byID    map[string]*Entry

	query uistate.Query
	view  uistate.Viewport
	marks uistate.Marks
}

func newPage(p catalog.Page, sched uicollection.Scheduler) (*Page, error) {
	section := dom.NewElement("section", classPage)
	section.SetAttr(attrPageID, p.ID)
	heading := dom.NewTextElement("h1", p.Title, theme.ClassTitle)
	ul := dom.NewElement("ul", classList)
	section.AppendChild(heading)
	section.AppendChild(ul)

	page := &Page{
		ID:      p.ID,
		Title:   p.Title,
		node:    section,
		heading: heading,
		byID:    make(map[string]*Entry, len(p.Entries)),
	}
	page.list = uicollection.New[*Entry](
		uicollection.NewElementRenderer(renderEntry, nil),
		uicollection.WithName[*Entry]("page:"+p.ID),
		uicollection.WithScheduler[*Entry](sched),
		uicollection.WithLabel(func(e *Entry) string { return e.ID }),
	)
	for _, e := range p.Entries {
		if err := page.add(entryFromCatalog(e)); err != nil {
			return nil, fmt.Errorf("page %s: %w", p.ID, err)
		}
	}
	page.list.Mount(ul)
	return page, nil
}

func renderEntry(e *Entry) *dom.Node {
	li := dom.NewElement("li", theme.ClassEntry)
	li.SetAttr(attrEntryID, e.ID)
	li.AppendChild(dom.NewTextElement("span", e.Label, classLabel))
	li.AppendChild(dom.NewTextElement("span", e.Detail, classDetail))
	return li
}

func (p *Page) add(e *Entry) error {
	if _, ok := p.byID[e.ID]; ok {
		return fmt.Errorf("entry %s: %w", e.ID, catalog.ErrDuplicateID)
	}
	if _, err := p.list.Add(e); err != nil {
		return err
	}
	p.byID[e.ID] = e
	return nil
}

// Node returns the page's section element.
func (p *Page) Node() *dom.Node { return p.node }

// List exposes the entry collection.
func (p *Page) List() *uicollection.UICollection[*Entry] { return p.list }

// Entries returns the entries that pass the filter, in display order.
func (p *Page) Entries() []*Entry { return p.list.Items() }

// Entry looks an entry up by id.
func (p *Page) Entry(id string) (*Entry, bool) {
	e, ok := p.byID[id]
	return e, ok
}

// IDs returns every entry id in full order, ignoring the filter.
func (p *Page) IDs() []string {
	all := p.list.AllItems()
	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.ID
	}
	return ids
}

func (p *Page) Query() string { return p.query.Text }

func (p *Page) Cursor() int { return p.view.Cursor }

// Selected returns the entry under the cursor.
func (p *Page) Selected() (*Entry, bool) {
	return p.list.GetAt(p.view.Cursor)
}

func (p *Page) selectEntry(e *Entry) {
	if idx := p.list.IndexOf(e); idx >= 0 {
		p.view.Cursor = idx
	}
}

// applyFilter narrows the list to entries matching the query. A blank query
// shows everything.
func (p *Page) applyFilter() {
	selected, hadSelection := p.Selected()
	p.list.WithLayoutDisabled(func() {
		if p.list.Filtered() {
			p.list.ClearFilter()
		}
		if p.query.Trimmed() == "" {
			return
		}
		all := p.list.AllItems()
		labels := make([]string, len(all))
		ids := make([]string, len(all))
		for i, e := range all {
			labels[i] = e.Label
			ids[i] = e.ID
		}
		matches := matching(p.query.Text, all, labels, ids)
		p.list.Filter(func(e *Entry, _ int) bool {
			_, ok := matches[e]
			return ok
		})
	})
	if hadSelection && p.list.Contains(selected) {
		p.selectEntry(selected)
	} else {
		p.view.Cursor = bestCursor(p.Entries(), p.query.Text)
	}
	p.view.Clamp(p.list.Count())
}

// matching returns the set of entries whose label or id matches query.
func matching(query string, entries []*Entry, labels, ids []string) map[*Entry]struct{} {
	hits := uistate.Match(query, labels, ids)
	out := make(map[*Entry]struct{}, len(entries))
	for i, ok := range hits {
		if ok {
			out[entries[i]] = struct{}{}
		}
	}
	return out
}

func bestCursor(entries []*Entry, query string) int {
	if len(entries) == 0 {
		return 0
	}
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	if idx := uistate.BestMatchIndex(labels, query); idx >= 0 {
		return idx
	}
	return 0
}

func (p *Page) clearQuery() bool {
	if p.query.Text == "" && !p.list.Filtered() {
		return false
	}
	p.query.Set("", 0)
	p.applyFilter()
	return true
}

// withFilterLifted runs fn against the unfiltered list and restores the
// filter afterwards with a single layout pass.
func (p *Page) withFilterLifted(fn func() error) error {
	var err error
	p.list.WithLayoutDisabled(func() {
		if p.list.Filtered() {
			p.list.ClearFilter()
		}
		err = fn()
	})
	if p.query.Trimmed() != "" {
		p.applyFilter()
	}
	return err
}

// InsertAt places e at index of the visible list. The list appends requests
// at its last index, so e is moved back in front of the old tail when index
// names an existing row.
func (p *Page) InsertAt(index int, e *Entry) error {
	if _, ok := p.byID[e.ID]; ok {
		return fmt.Errorf("entry %s: %w", e.ID, catalog.ErrDuplicateID)
	}
	if _, err := p.list.InsertAt(index, e); err != nil {
		return err
	}
	p.byID[e.ID] = e
	if index >= 0 && index < p.list.Count()-1 && p.list.IndexOf(e) != index {
		return p.list.MoveTo(index, e)
	}
	return nil
}

// insertAtFull places e at index of the full order.
func (p *Page) insertAtFull(index int, e *Entry) error {
	return p.withFilterLifted(func() error {
		return p.InsertAt(index, e)
	})
}

// Remove drops e from the page and its marks.
func (p *Page) Remove(e *Entry) error {
	if _, err := p.list.Remove(e); err != nil {
		return err
	}
	delete(p.byID, e.ID)
	p.marks.Drop(e.ID)
	p.view.Clamp(p.list.Count())
	return nil
}

func (p *Page) removeByID(id string) error {
	e, ok := p.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntry, id)
	}
	if p.list.Contains(e) {
		return p.Remove(e)
	}
	return p.withFilterLifted(func() error { return p.Remove(e) })
}

// Move shifts the selected entry by delta rows and keeps it selected.
func (p *Page) Move(delta int) (bool, error) {
	e, ok := p.Selected()
	if !ok {
		return false, ErrNoSelection
	}
	to := p.view.Cursor + delta
	if to < 0 || to >= p.list.Count() {
		return false, nil
	}
	if err := p.list.MoveTo(to, e); err != nil {
		return false, err
	}
	p.selectEntry(e)
	return true, nil
}

// SortByLabel orders entries by label, then id.
func (p *Page) SortByLabel() {
	selected, ok := p.Selected()
	p.list.Sort(func(a, b *Entry) int {
		if c := cmp.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if ok {
		p.selectEntry(selected)
	}
}

// ToggleMark marks the selected entry. When another entry is already marked
// the two swap places and both marks clear. It returns the swapped partner.
func (p *Page) ToggleMark() (*Entry, error) {
	e, ok := p.Selected()
	if !ok {
		return nil, ErrNoSelection
	}
	otherID, hasOther := p.marks.Other(e.ID)
	if !hasOther || p.marks.Has(e.ID) {
		p.marks.Toggle(e.ID)
		return nil, nil
	}
	other, ok := p.byID[otherID]
	if !ok || !p.list.Contains(other) {
		p.marks.Drop(otherID)
		p.marks.Toggle(e.ID)
		return nil, nil
	}
	if err := p.list.Swap(other, e); err != nil {
		return nil, err
	}
	p.marks.Clear()
	p.selectEntry(e)
	return other, nil
}

// Marked reports whether id is marked for a swap.
func (p *Page) Marked(id string) bool { return p.marks.Has(id) }

// Truncate drops every entry at once.
func (p *Page) Truncate() {
	p.list.Truncate()
	p.byID = make(map[string]*Entry)
	p.marks.Clear()
	p.view = uistate.Viewport{}
}

// update copies label, detail and target from e into the existing entry and
// its element. It reports whether anything changed.
func (p *Page) update(e catalog.Entry) (bool, error) {
	cur, ok := p.byID[e.ID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownEntry, e.ID)
	}
	if cur.Label == e.Label && cur.Detail == e.Detail && cur.Target == e.Target {
		return false, nil
	}
	cur.Label, cur.Detail, cur.Target = e.Label, e.Detail, e.Target
	if node, ok := p.list.ElementFor(cur); ok {
		for _, child := range node.Children() {
			switch {
			case child.HasClass(classLabel):
				child.SetText(cur.Label)
			case child.HasClass(classDetail):
				child.SetText(cur.Detail)
			}
		}
	}
	return true, nil
}

func (p *Page) setTitle(title string) {
	if title == "" || title == p.Title {
		return
	}
	p.Title = title
	p.heading.SetText(title)
}

// entryAt resolves a rendered node back to its entry.
func (p *Page) entryAt(node *dom.Node) (*Entry, bool) {
	return p.list.ItemForElement(node)
}

// uniqueID derives an unused entry id from label.
func (p *Page) uniqueID(label string) string {
	base := slug(label)
	if base == "" {
		base = "entry"
	}
	id := base
	for n := 2; ; n++ {
		if _, taken := p.byID[id]; !taken {
			return id
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
