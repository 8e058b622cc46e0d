package dispatcher

import (
	"github.com/atomicstack/blendboard/internal/backend"
	"github.com/atomicstack/blendboard/internal/catalog"
	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/atomicstack/blendboard/internal/state"
)

// Target is the board side of a reload. Entry indexes are positions in the
// page's full order, ignoring any filter.
type Target interface {
	PageIDs() []string
	EntryIDs(pageID string) []string
	AddPage(page catalog.Page) error
	RemovePage(pageID string) error
	RemoveEntry(pageID, entryID string) error
	InsertEntry(pageID string, index int, entry catalog.Entry) error
	UpdateEntry(pageID string, entry catalog.Entry) (bool, error)
}

type Result struct {
	Revision       int
	PagesAdded     int
	PagesRemoved   int
	EntriesAdded   int
	EntriesRemoved int
	EntriesUpdated int
	Err            error
}

// Changed reports whether the board was touched.
func (r Result) Changed() bool {
	return r.PagesAdded+r.PagesRemoved+r.EntriesAdded+r.EntriesRemoved+r.EntriesUpdated > 0
}

type Dispatcher struct {
	store  state.CatalogStore
	target Target
	source string
}

func New(store state.CatalogStore, target Target, source string) *Dispatcher {
	return &Dispatcher{store: store, target: target, source: source}
}

// Handle applies a backend event to the store and the target.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	if evt.Err != nil {
		events.Source.Error(d.source, evt.Err)
		return Result{Err: evt.Err, Revision: d.store.Revision()}
	}
	if evt.Kind != backend.KindCatalog {
		return Result{Revision: d.store.Revision()}
	}
	c, ok := evt.Data.(catalog.Catalog)
	if !ok {
		return Result{Revision: d.store.Revision()}
	}
	res := d.Apply(c)
	return res
}

// Apply stores c and reconciles every page of the target with it.
func (d *Dispatcher) Apply(c catalog.Catalog) Result {
	res := Result{Revision: d.store.Set(c)}
	events.Source.Reload(d.source, res.Revision, len(c.Pages))

	wanted := make(map[string]struct{}, len(c.Pages))
	for _, p := range c.Pages {
		wanted[p.ID] = struct{}{}
	}
	existing := make(map[string]struct{})
	for _, id := range d.target.PageIDs() {
		existing[id] = struct{}{}
		if _, ok := wanted[id]; ok {
			continue
		}
		if err := d.target.RemovePage(id); err != nil {
			res.Err = err
			return res
		}
		res.PagesRemoved++
	}

	for _, p := range c.Pages {
		if _, ok := existing[p.ID]; !ok {
			if err := d.target.AddPage(p); err != nil {
				res.Err = err
				return res
			}
			res.PagesAdded++
			continue
		}
		if err := d.reconcile(p, &res); err != nil {
			res.Err = err
			return res
		}
	}
	return res
}

func (d *Dispatcher) reconcile(p catalog.Page, res *Result) error {
	wanted := make(map[string]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		wanted[e.ID] = struct{}{}
	}
	added, removed, updated := 0, 0, 0
	present := make(map[string]struct{})
	for _, id := range d.target.EntryIDs(p.ID) {
		if _, ok := wanted[id]; ok {
			present[id] = struct{}{}
			continue
		}
		if err := d.target.RemoveEntry(p.ID, id); err != nil {
			return err
		}
		removed++
	}
	for i, e := range p.Entries {
		if _, ok := present[e.ID]; !ok {
			if err := d.target.InsertEntry(p.ID, i, e); err != nil {
				return err
			}
			added++
			continue
		}
		changed, err := d.target.UpdateEntry(p.ID, e)
		if err != nil {
			return err
		}
		if changed {
			updated++
		}
	}
	res.EntriesAdded += added
	res.EntriesRemoved += removed
	res.EntriesUpdated += updated
	if added+removed+updated > 0 {
		events.Source.Reconcile(p.ID, added, removed, updated)
	}
	return nil
}
