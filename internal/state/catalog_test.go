package state

import (
	"testing"

	"github.com/atomicstack/blendboard/internal/catalog"
)

func TestCatalogStoreRevisionsAndIsolation(t *testing.T) {
	s := NewCatalogStore()
	if _, ok := s.Snapshot(); ok {
		t.Fatalf("expected empty store")
	}
	c := catalog.Default()
	if rev := s.Set(c); rev != 1 {
		t.Fatalf("expected revision 1, got %d", rev)
	}
	c.Pages[1].Entries[0].Label = "mutated"
	snap, ok := s.Snapshot()
	if !ok {
		t.Fatalf("expected snapshot")
	}
	if snap.Pages[1].Entries[0].Label == "mutated" {
		t.Fatalf("expected store to keep its own copy")
	}
	snap.Pages[1].Entries[0].Label = "again"
	if again, _ := s.Snapshot(); again.Pages[1].Entries[0].Label == "again" {
		t.Fatalf("expected snapshot to be a copy")
	}
	if rev := s.Set(c); rev != 2 || s.Revision() != 2 {
		t.Fatalf("expected revision 2, got %d", s.Revision())
	}
}
