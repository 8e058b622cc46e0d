package uicollection

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/blendboard/internal/collection"
	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/google/go-cmp/cmp"
)

type card struct {
	id string
}

func cards(ids string) []*card {
	out := make([]*card, 0, len(ids))
	for _, r := range ids {
		out = append(out, &card{id: string(r)})
	}
	return out
}

func renderCard(c *card) *dom.Node {
	li := dom.NewElement("li", "card")
	li.SetAttr("data-id", c.id)
	li.AppendChild(dom.NewTextElement("span", c.id, "label"))
	return li
}

func nodeIDs(parent *dom.Node) string {
	var b strings.Builder
	for _, child := range parent.Children() {
		id, _ := child.Attr("data-id")
		b.WriteString(id)
	}
	return b.String()
}

func itemIDs(items []*card) string {
	var b strings.Builder
	for _, c := range items {
		b.WriteString(c.id)
	}
	return b.String()
}

type fixture struct {
	renderer  *ElementRenderer[*card]
	ui        *UICollection[*card]
	container *dom.Node
	released  []string
}

func newFixture(t *testing.T, ids string, mount bool, opts ...Option[*card]) *fixture {
	t.Helper()
	f := &fixture{container: dom.NewElement("ul", "list")}
	f.renderer = NewElementRenderer(renderCard, func(c *card, _ *dom.Node) {
		f.released = append(f.released, c.id)
	})
	f.ui = New[*card](f.renderer, append([]Option[*card]{WithName[*card]("test")}, opts...)...)
	for _, c := range cards(ids) {
		if _, err := f.ui.Add(c); err != nil {
			t.Fatalf("add %s: %v", c.id, err)
		}
	}
	if mount {
		f.ui.Mount(f.container)
	}
	return f
}

func (f *fixture) at(t *testing.T, index int) *card {
	t.Helper()
	c, ok := f.ui.GetAt(index)
	if !ok {
		t.Fatalf("expected item at %d", index)
	}
	return c
}

func (f *fixture) assertMirrors(t *testing.T) {
	t.Helper()
	if diff := cmp.Diff(itemIDs(f.ui.Items()), nodeIDs(f.container)); diff != "" {
		t.Fatalf("container out of sync with active list (-items +nodes):\n%s", diff)
	}
	if got, want := f.container.NumChildren()+f.ui.Stash().NumChildren(), len(f.ui.AllItems()); got != want {
		t.Fatalf("expected %d rendered members, got %d", want, got)
	}
}

func TestMountGatesRendering(t *testing.T) {
	f := newFixture(t, "ABC", false)
	if f.renderer.Cached() != 0 {
		t.Fatalf("expected no rendering before mount, got %d", f.renderer.Cached())
	}
	if _, err := f.ui.InsertAt(0, &card{id: "Z"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if f.container.NumChildren() != 0 {
		t.Fatalf("expected untouched container before mount")
	}
	f.ui.Mount(f.container)
	if got := nodeIDs(f.container); got != "ZABC" {
		t.Fatalf("expected ZABC after mount, got %s", got)
	}
	if !f.ui.Mounted() || f.ui.Container() != f.container {
		t.Fatalf("expected mounted state")
	}
}

func TestContainerFollowsEveryOperation(t *testing.T) {
	f := newFixture(t, "ABCDEF", true)
	f.assertMirrors(t)

	steps := []struct {
		name string
		run  func() error
	}{
		{"insert", func() error { _, err := f.ui.InsertAt(1, &card{id: "X"}); return err }},
		{"insert-negative", func() error { _, err := f.ui.InsertAt(-2, &card{id: "Y"}); return err }},
		{"insert-past-end", func() error { _, err := f.ui.InsertAt(99, &card{id: "W"}); return err }},
		{"move-first", func() error { return f.ui.MoveFirst(f.at(t, -1)) }},
		{"move-middle", func() error { return f.ui.MoveTo(3, f.at(t, 0)) }},
		{"move-last", func() error { return f.ui.MoveLast(f.at(t, 2)) }},
		{"swap", func() error { return f.ui.Swap(f.at(t, 0), f.at(t, -1)) }},
		{"swap-adjacent", func() error { return f.ui.Swap(f.at(t, 2), f.at(t, 3)) }},
		{"remove", func() error { _, err := f.ui.Remove(f.at(t, 4)); return err }},
		{"remove-first", func() error { _, _, err := f.ui.RemoveFirst(); return err }},
		{"sort", func() error {
			f.ui.Sort(func(a, b *card) int { return strings.Compare(a.id, b.id) })
			return nil
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		f.assertMirrors(t)
	}
	if got := nodeIDs(f.container); got != "ACDEFWX" {
		t.Fatalf("expected sorted ACDEFWX, got %s", got)
	}
}

func TestFilterStashesHiddenMembers(t *testing.T) {
	f := newFixture(t, "ABCDEF", true)
	f.ui.Filter(func(_ *card, i int) bool { return i%2 == 1 })
	if got := nodeIDs(f.container); got != "BDF" {
		t.Fatalf("expected BDF, got %s", got)
	}
	if got := nodeIDs(f.ui.Stash()); got != "ACE" {
		t.Fatalf("expected ACE stashed, got %s", got)
	}

	if _, err := f.ui.Add(&card{id: "G"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	f.assertMirrors(t)
	if err := f.ui.MoveTo(4, f.at(t, 1)); err != nil {
		t.Fatalf("move: %v", err)
	}
	f.assertMirrors(t)
	if got := nodeIDs(f.container); got != "BFGD" {
		t.Fatalf("expected BFGD, got %s", got)
	}
	if _, err := f.ui.InsertAt(0, &card{id: "X"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	f.assertMirrors(t)

	f.ui.ClearFilter()
	f.assertMirrors(t)
	if got := nodeIDs(f.container); got != "AXBCEFGD" {
		t.Fatalf("expected AXBCEFGD, got %s", got)
	}
	if f.ui.Stash().NumChildren() != 0 {
		t.Fatalf("expected empty stash after clearing the filter")
	}
}

func TestRemoveReleasesElement(t *testing.T) {
	f := newFixture(t, "ABC", true)
	b := f.at(t, 1)
	el, ok := f.ui.ElementFor(b)
	if !ok {
		t.Fatalf("expected rendered element for B")
	}
	if _, err := f.ui.Remove(b); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if el.Parent() != nil {
		t.Fatalf("expected element detached")
	}
	if _, ok := f.ui.ElementFor(b); ok {
		t.Fatalf("expected element forgotten")
	}
	if diff := cmp.Diff([]string{"B"}, f.released); diff != "" {
		t.Fatalf("unexpected releases (-want +got):\n%s", diff)
	}
	if _, err := f.ui.Remove(b); !errors.Is(err, collection.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestTruncateReleasesEverythingAndNotifiesOnce(t *testing.T) {
	f := newFixture(t, "ABCD", true)
	f.ui.Filter(func(c *card, _ int) bool { return c.id != "C" })
	var kinds []EventKind
	f.ui.Subscribe(func(ch Change[*card]) { kinds = append(kinds, ch.Kind) })

	f.ui.Truncate()
	if diff := cmp.Diff([]EventKind{Truncated}, kinds); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, f.released); diff != "" {
		t.Fatalf("expected every element released in join order (-want +got):\n%s", diff)
	}
	if f.container.NumChildren() != 0 || f.ui.Stash().NumChildren() != 0 || f.renderer.Cached() != 0 {
		t.Fatalf("expected no nodes left after truncate")
	}
}

func TestItemForElementWalksAncestors(t *testing.T) {
	f := newFixture(t, "ABC", true)
	b := f.at(t, 1)
	el, _ := f.ui.ElementFor(b)
	label := el.ChildAt(0)
	got, ok := f.ui.ItemForElement(label)
	if !ok || got != b {
		t.Fatalf("expected B from nested label, got %v %v", got, ok)
	}
	if _, ok := f.ui.ItemForElement(dom.NewElement("li")); ok {
		t.Fatalf("expected unknown node to resolve to nothing")
	}
	if _, ok := f.ui.ItemForElement(f.container); ok {
		t.Fatalf("expected container to resolve to nothing")
	}
	if _, err := f.ui.Remove(b); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := f.ui.ItemForElement(label); ok {
		t.Fatalf("expected removed element to resolve to nothing")
	}
	if f.ui.IndexOf(f.at(t, 1)) != 1 {
		t.Fatalf("expected lazy index to follow removal")
	}
}

func TestWithLayoutDisabledRunsOnePass(t *testing.T) {
	f := newFixture(t, "CAB", true)
	before := f.ui.passes
	f.ui.WithLayoutDisabled(func() {
		f.ui.Add(&card{id: "E"})
		f.ui.Sort(func(a, b *card) int { return strings.Compare(a.id, b.id) })
		f.ui.InsertAt(0, &card{id: "D"})
		f.ui.Filter(func(c *card, _ int) bool { return c.id != "B" })
		f.ui.PerformLayout()
	})
	if got := f.ui.passes - before; got != 1 {
		t.Fatalf("expected exactly one layout pass, got %d", got)
	}
	f.assertMirrors(t)
	if got := nodeIDs(f.container); got != "DACE" {
		t.Fatalf("expected DACE, got %s", got)
	}
}

func TestWithLayoutDisabledLaysOutAfterPanic(t *testing.T) {
	f := newFixture(t, "AB", true)
	before := f.ui.passes
	func() {
		defer func() { _ = recover() }()
		f.ui.WithLayoutDisabled(func() {
			f.ui.Add(&card{id: "C"})
			panic("boom")
		})
	}()
	if f.ui.passes-before != 1 || f.ui.layoutDepth != 0 {
		t.Fatalf("expected layout to run and nesting to reset, passes=%d depth=%d", f.ui.passes-before, f.ui.layoutDepth)
	}
	f.assertMirrors(t)
}

func TestQueuedListenersRunAfterNodeChanges(t *testing.T) {
	q := NewQueue()
	f := newFixture(t, "AB", true, WithScheduler[*card](q))
	var seen []string
	f.ui.Subscribe(func(ch Change[*card]) {
		if ch.Kind == ItemAdded {
			el, ok := f.ui.ElementFor(ch.Item)
			if !ok || el.Parent() != f.container {
				t.Errorf("expected %s attached before notification", ch.Item.id)
			}
		}
		seen = append(seen, ch.Kind.String())
	})
	q.Flush()
	seen = nil

	f.ui.Add(&card{id: "C"})
	f.ui.Filter(func(c *card, _ int) bool { return c.id != "A" })
	f.ui.RemoveFirst()
	if len(seen) != 0 {
		t.Fatalf("expected no delivery before flush, got %v", seen)
	}
	if q.Len() != 3 {
		t.Fatalf("expected 3 queued notifications, got %d", q.Len())
	}
	if n := q.Flush(); n != 3 {
		t.Fatalf("expected 3 callbacks run, got %d", n)
	}
	want := []string{"item-added", "filter-changed", "item-removed"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("unexpected delivery order (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	f := newFixture(t, "", true)
	calls := 0
	stop := f.ui.Subscribe(func(Change[*card]) { calls++ })
	f.ui.Add(&card{id: "A"})
	stop()
	f.ui.Add(&card{id: "B"})
	if calls != 1 {
		t.Fatalf("expected one delivery, got %d", calls)
	}
}

func TestWithEventsSuspendedReconcilesNodes(t *testing.T) {
	f := newFixture(t, "ABC", true)
	calls := 0
	f.ui.Subscribe(func(Change[*card]) { calls++ })
	f.ui.WithEventsSuspended(func() {
		f.ui.Remove(f.at(t, 1))
		f.ui.InsertAt(0, &card{id: "Z"})
	})
	if calls != 0 {
		t.Fatalf("expected silent mutations, got %d notifications", calls)
	}
	if !f.ui.EventsEnabled() {
		t.Fatalf("expected events restored")
	}
	f.assertMirrors(t)
	if diff := cmp.Diff([]string{"B"}, f.released); diff != "" {
		t.Fatalf("expected B released (-want +got):\n%s", diff)
	}
}

func TestClearWithFilterShowsRemainingMembers(t *testing.T) {
	f := newFixture(t, "ABCD", true)
	f.ui.Filter(func(c *card, _ int) bool { return c.id == "B" || c.id == "D" })
	if err := f.ui.Clear(true); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if f.ui.Filtered() {
		t.Fatalf("expected filter dropped")
	}
	f.assertMirrors(t)
	if got := nodeIDs(f.container); got != "AC" {
		t.Fatalf("expected AC, got %s", got)
	}
}

func TestDuplicateAndNilRejected(t *testing.T) {
	f := newFixture(t, "A", true)
	a := f.at(t, 0)
	if _, err := f.ui.Add(a); !errors.Is(err, collection.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := f.ui.Add(nil); !errors.Is(err, collection.ErrNilItem) {
		t.Fatalf("expected ErrNilItem, got %v", err)
	}
	if f.container.NumChildren() != 1 {
		t.Fatalf("expected rejected adds to leave the container alone")
	}
}

func TestQueueRunsCallbacksScheduledDuringFlush(t *testing.T) {
	q := NewQueue()
	var order []int
	q.Schedule(func() {
		order = append(order, 1)
		q.Schedule(func() { order = append(order, 3) })
	})
	q.Schedule(func() { order = append(order, 2) })
	q.Schedule(nil)
	if n := q.Flush(); n != 3 {
		t.Fatalf("expected 3 callbacks, got %d", n)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSwapNodesReportsForeignReference(t *testing.T) {
	parent := dom.NewElement("ul")
	a, b := renderCard(&card{id: "A"}), renderCard(&card{id: "B"})
	parent.AppendChild(a)
	parent.AppendChild(b)
	stray := renderCard(&card{id: "S"})
	dom.NewElement("ul").AppendChild(stray)

	if err := swapNodes(parent, a, stray); !errors.Is(err, dom.ErrNotChild) {
		t.Fatalf("expected ErrNotChild, got %v", err)
	}
	if got := nodeIDs(parent); got != "AB" || parent.NumChildren() != 2 {
		t.Fatalf("expected siblings untouched and no marker left, got %q (%d children)", got, parent.NumChildren())
	}
	if err := swapNodes(parent, a, b); err != nil {
		t.Fatalf("swap: %v", err)
	}
	if got := nodeIDs(parent); got != "BA" || parent.NumChildren() != 2 {
		t.Fatalf("expected BA, got %q", got)
	}
}
