package state

import (
	"sync"

	"github.com/atomicstack/blendboard/internal/catalog"
)

// CatalogStore keeps the most recently applied catalog.
type CatalogStore interface {
	Snapshot() (catalog.Catalog, bool)
	Set(catalog.Catalog) int
	Revision() int
}

type catalogStore struct {
	mu       sync.Mutex
	current  catalog.Catalog
	loaded   bool
	revision int
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (s *catalogStore) Snapshot() (catalog.Catalog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCatalog(s.current), s.loaded
}

// Set stores c and returns the new revision.
func (s *catalogStore) Set(c catalog.Catalog) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cloneCatalog(c)
	s.loaded = true
	s.revision++
	return s.revision
}

func (s *catalogStore) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func cloneCatalog(c catalog.Catalog) catalog.Catalog {
	if len(c.Pages) == 0 {
		return catalog.Catalog{Title: c.Title}
	}
	pages := make([]catalog.Page, len(c.Pages))
	for i, p := range c.Pages {
		pages[i] = p
		if len(p.Entries) > 0 {
			pages[i].Entries = append([]catalog.Entry(nil), p.Entries...)
		}
	}
	return catalog.Catalog{Title: c.Title, Pages: pages}
}
