package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atomicstack/blendboard/internal/catalog"
	"github.com/atomicstack/blendboard/internal/data/dispatcher"
	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/atomicstack/blendboard/internal/theme"
	"github.com/atomicstack/blendboard/internal/uicollection"
)

const crumbSeparator = " → "

// Board shows one page of a catalog at a time. Pages live in a stack whose
// container is the board body; opening a page pushes it as the active view.
type Board struct {
	Title string

	root  *dom.Node
	crumb *dom.Node
	body  *dom.Node

	stack   *uicollection.Stack[*Page]
	pages   map[string]*Page
	history []string
	queue   *uicollection.Queue
}

// NewBoard builds a board from c. With scheduled set, page changes run
// through the board's queue and become visible on the next Flush.
func NewBoard(c catalog.Catalog, scheduled bool) (*Board, error) {
	root := dom.NewElement("main", "board")
	crumb := dom.NewTextElement("nav", c.Title, theme.ClassCrumb)
	body := dom.NewElement("div", "body")
	root.AppendChild(crumb)
	root.AppendChild(body)

	b := &Board{
		Title: c.Title,
		root:  root,
		crumb: crumb,
		body:  body,
		pages: make(map[string]*Page, len(c.Pages)),
		queue: uicollection.NewQueue(),
	}
	b.stack = uicollection.NewStack[*Page](
		uicollection.NewElementRenderer(func(p *Page) *dom.Node { return p.node }, nil),
		uicollection.WithName[*Page]("board"),
		uicollection.WithScheduler[*Page](b.queue),
		uicollection.WithLabel(func(p *Page) string { return p.ID }),
	)
	if scheduled {
		b.stack.SetTransition(uicollection.ScheduledTransition[*Page]{Scheduler: b.queue})
	}
	for _, p := range c.Pages {
		if err := b.AddPage(p); err != nil {
			return nil, err
		}
	}
	b.stack.Mount(body)
	b.stack.OnView(b.onView)
	return b, nil
}

func (b *Board) onView(ch uicollection.StackChange[*Page]) {
	if ch.Kind == uicollection.ViewActivated {
		b.crumb.SetText(b.Breadcrumb())
	}
}

// Root returns the board's root element.
func (b *Board) Root() *dom.Node { return b.root }

// Stack exposes the page stack.
func (b *Board) Stack() *uicollection.Stack[*Page] { return b.stack }

// Flush runs queued transitions and notifications. It returns the number of
// callbacks run.
func (b *Board) Flush() int { return b.queue.Flush() }

// Page looks a page up by id.
func (b *Board) Page(id string) (*Page, bool) {
	p, ok := b.pages[id]
	return p, ok
}

// Current returns the active page.
func (b *Board) Current() (*Page, bool) {
	return b.stack.Current()
}

// Depth is the length of the navigation history.
func (b *Board) Depth() int { return len(b.history) }

// Breadcrumb joins the titles along the navigation history.
func (b *Board) Breadcrumb() string {
	parts := make([]string, 0, len(b.history))
	for _, id := range b.history {
		if p, ok := b.pages[id]; ok {
			parts = append(parts, p.Title)
		}
	}
	if len(parts) == 0 {
		return b.Title
	}
	return strings.Join(parts, crumbSeparator)
}

// Start resets the history to a single page.
func (b *Board) Start(id string) error {
	p, ok := b.pages[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}
	b.history = []string{id}
	return b.stack.SetActiveView(p)
}

// Open pushes page id on top of the history.
func (b *Board) Open(id string) error {
	p, ok := b.pages[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}
	if cur, ok := b.stack.Current(); ok && cur == p {
		return nil
	}
	if err := b.stack.PushView(p); err != nil {
		return err
	}
	b.history = append(b.history, id)
	return nil
}

// Back returns to the previous page. It reports false at the root.
func (b *Board) Back() (bool, error) {
	if len(b.history) <= 1 {
		return false, nil
	}
	from := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	to := b.history[len(b.history)-1]
	events.UI.Back(from, to)
	return true, b.stack.PushView(b.pages[to])
}

// PageIDs implements dispatcher.Target.
func (b *Board) PageIDs() []string {
	all := b.stack.AllItems()
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	return ids
}

// EntryIDs implements dispatcher.Target.
func (b *Board) EntryIDs(pageID string) []string {
	p, ok := b.pages[pageID]
	if !ok {
		return nil
	}
	return p.IDs()
}

// AddPage implements dispatcher.Target.
func (b *Board) AddPage(cp catalog.Page) error {
	if _, ok := b.pages[cp.ID]; ok {
		return fmt.Errorf("page %s: %w", cp.ID, catalog.ErrDuplicateID)
	}
	p, err := newPage(cp, b.queue)
	if err != nil {
		return err
	}
	if _, err := b.stack.Add(p); err != nil {
		return err
	}
	b.pages[cp.ID] = p
	return nil
}

// RemovePage implements dispatcher.Target. Removing a page drops it from
// the history; when it was showing, the previous page takes its place.
func (b *Board) RemovePage(id string) error {
	p, ok := b.pages[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, id)
	}
	wasCurrent := false
	if cur, ok := b.stack.Current(); ok && cur == p {
		wasCurrent = true
	}
	if _, err := b.stack.Remove(p); err != nil {
		return err
	}
	delete(b.pages, id)
	b.history = slices.DeleteFunc(b.history, func(h string) bool { return h == id })
	if !wasCurrent {
		return nil
	}
	if len(b.history) == 0 {
		first, ok := b.stack.GetFirst()
		if !ok {
			return nil
		}
		return b.Start(first.ID)
	}
	return b.stack.SetActiveView(b.pages[b.history[len(b.history)-1]])
}

// RemoveEntry implements dispatcher.Target.
func (b *Board) RemoveEntry(pageID, entryID string) error {
	p, ok := b.pages[pageID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, pageID)
	}
	return p.removeByID(entryID)
}

// InsertEntry implements dispatcher.Target.
func (b *Board) InsertEntry(pageID string, index int, e catalog.Entry) error {
	p, ok := b.pages[pageID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, pageID)
	}
	return p.insertAtFull(index, entryFromCatalog(e))
}

// UpdateEntry implements dispatcher.Target.
func (b *Board) UpdateEntry(pageID string, e catalog.Entry) (bool, error) {
	p, ok := b.pages[pageID]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPage, pageID)
	}
	return p.update(e)
}

// Retitle refreshes page titles from c.
func (b *Board) Retitle(c catalog.Catalog) {
	if c.Title != "" {
		b.Title = c.Title
	}
	for _, cp := range c.Pages {
		if p, ok := b.pages[cp.ID]; ok {
			p.setTitle(cp.Title)
		}
	}
	b.crumb.SetText(b.Breadcrumb())
}

var _ dispatcher.Target = (*Board)(nil)
