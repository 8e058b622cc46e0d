package ui

import (
	"testing"

	"github.com/atomicstack/blendboard/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if len(opts.Catalog.Pages) == 0 {
		opts.Catalog = catalog.Default()
	}
	m, err := NewModel(opts, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func altKey(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t, Alt: true} }

func TestNewModelStartsAtFirstPage(t *testing.T) {
	m := newTestModel(t, Options{})
	if p := m.currentPage(); p == nil || p.ID != "home" {
		t.Fatalf("expected home page, got %v", p)
	}
	if m.header() != "Home" {
		t.Fatalf("expected header Home, got %q", m.header())
	}
}

func TestRootPageOverride(t *testing.T) {
	m := newTestModel(t, Options{RootPage: " Projects "})
	if p := m.currentPage(); p.ID != "projects" {
		t.Fatalf("expected projects, got %s", p.ID)
	}
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
}

func TestInvalidRootPageFallsBack(t *testing.T) {
	m := newTestModel(t, Options{RootPage: "does-not-exist"})
	if p := m.currentPage(); p.ID != "home" {
		t.Fatalf("expected fallback to home, got %s", p.ID)
	}
	if m.errMsg == "" {
		t.Fatalf("expected error message for invalid root page")
	}
}

func TestEnterOpensTargetAndEscReturns(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyEnter))
	m := h.Model()
	if p := m.currentPage(); p.ID != "projects" {
		t.Fatalf("expected projects, got %s", p.ID)
	}
	if m.header() != "Home → Projects" {
		t.Fatalf("unexpected header %q", m.header())
	}
	h.Send(key(tea.KeyEsc))
	if p := m.currentPage(); p.ID != "home" || p.Cursor() != 1 {
		t.Fatalf("expected home with cursor 1, got %s/%d", p.ID, p.Cursor())
	}
	if h.Quit() {
		t.Fatalf("did not expect quit after popping a page")
	}
	h.Send(key(tea.KeyEsc))
	if !h.Quit() {
		t.Fatalf("expected esc at the root to quit")
	}
}

func TestScheduledTransitionSettlesWithinUpdate(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{Scheduled: true}))
	h.Send(key(tea.KeyEnter))
	if p := h.Model().currentPage(); p.ID != "inbox" {
		t.Fatalf("expected inbox after update, got %s", p.ID)
	}
}

func TestEnterWithoutTargetShowsInfo(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(key(tea.KeyEnter))
	m := h.Model()
	if p := m.currentPage(); p.ID != "inbox" {
		t.Fatalf("expected to stay on inbox, got %s", p.ID)
	}
	if m.currentInfo() == "" {
		t.Fatalf("expected info message")
	}
}

func TestCursorWraps(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Send(key(tea.KeyUp))
	if got := h.Model().currentPage().Cursor(); got != 2 {
		t.Fatalf("expected wrap to 2, got %d", got)
	}
	h.Send(key(tea.KeyHome))
	h.Send(key(tea.KeyEnd))
	if got := h.Model().currentPage().Cursor(); got != 2 {
		t.Fatalf("expected end at 2, got %d", got)
	}
}

func TestTypingFiltersCurrentPage(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Type("rep")
	p := h.Model().currentPage()
	if p.Query() != "rep" {
		t.Fatalf("expected query rep, got %q", p.Query())
	}
	if got := p.rows(); got != "review,reply" {
		t.Fatalf("unexpected rows %q", got)
	}
	h.Send(key(tea.KeyBackspace))
	if p.Query() != "re" {
		t.Fatalf("expected backspace to edit the query, got %q", p.Query())
	}
	h.Send(key(tea.KeyCtrlU))
	if p.Query() != "" || p.rows() != "review,reply,triage" {
		t.Fatalf("expected cleared filter, got %q / %q", p.Query(), p.rows())
	}
}

func TestFilterCursorKeys(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Type("abc")
	p := h.Model().currentPage()
	h.Send(key(tea.KeyLeft))
	if p.query.Pos() != 2 {
		t.Fatalf("expected cursor at 2, got %d", p.query.Pos())
	}
	h.Send(key(tea.KeyCtrlA))
	if p.query.Pos() != 0 {
		t.Fatalf("expected cursor at start, got %d", p.query.Pos())
	}
	h.Send(key(tea.KeyRight))
	h.Send(key(tea.KeyCtrlE))
	if p.query.Pos() != 3 {
		t.Fatalf("expected cursor at end, got %d", p.query.Pos())
	}
}

func TestEnterClearsFilterBeforeOpening(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Type("proj")
	h.Send(key(tea.KeyEnter))
	m := h.Model()
	if p := m.currentPage(); p.ID != "projects" {
		t.Fatalf("expected projects, got %s", p.ID)
	}
	home, _ := m.board.Page("home")
	if home.Query() != "" || home.list.Filtered() {
		t.Fatalf("expected home filter cleared")
	}
	if home.Cursor() != 1 {
		t.Fatalf("expected home cursor on projects, got %d", home.Cursor())
	}
}

func TestAltArrowsMoveEntry(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(altKey(tea.KeyDown))
	p := h.Model().currentPage()
	if got := p.rows(); got != "reply,review,triage" {
		t.Fatalf("unexpected rows %q", got)
	}
	h.Send(altKey(tea.KeyUp))
	if got := p.rows(); got != "review,reply,triage" {
		t.Fatalf("unexpected rows after moving back %q", got)
	}
	h.Send(altKey(tea.KeyUp))
	if h.Model().errMsg != "" {
		t.Fatalf("expected no error at the head, got %q", h.Model().errMsg)
	}
}

func TestSortKey(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(key(tea.KeyCtrlS))
	p := h.Model().currentPage()
	if got := p.rows(); got != "reply,review,triage" {
		t.Fatalf("unexpected rows %q", got)
	}
	if h.Model().currentInfo() != "Sorted Inbox" {
		t.Fatalf("unexpected info %q", h.Model().currentInfo())
	}
}

func TestRemoveKey(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "projects"}))
	h.Send(key(tea.KeyEnd))
	h.Send(key(tea.KeyCtrlX))
	p := h.Model().currentPage()
	if got := p.rows(); got != "board" {
		t.Fatalf("unexpected rows %q", got)
	}
	if p.Cursor() != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", p.Cursor())
	}
	h.Send(key(tea.KeyCtrlX))
	h.Send(key(tea.KeyCtrlX))
	if h.Model().errMsg != ErrNoSelection.Error() {
		t.Fatalf("expected no-selection error, got %q", h.Model().errMsg)
	}
}

func TestTabMarksThenSwaps(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyEnd))
	h.Send(key(tea.KeyTab))
	p := h.Model().currentPage()
	if got := p.rows(); got != "triage,reply,review" {
		t.Fatalf("unexpected rows %q", got)
	}
	if h.Model().currentInfo() == "" {
		t.Fatalf("expected swap info")
	}
}

func TestTruncateKey(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(key(tea.KeyCtrlK))
	p := h.Model().currentPage()
	if p.list.Count() != 0 || p.list.Container().NumChildren() != 0 {
		t.Fatalf("expected empty page")
	}
}

func TestNewEntryFormInsertsAtCursor(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyCtrlN))
	m := h.Model()
	if m.mode != ModeEntryForm {
		t.Fatalf("expected entry form mode")
	}
	h.Send(key(tea.KeyEnter))
	if m.mode != ModeEntryForm || m.form.err == "" {
		t.Fatalf("expected empty label to be rejected")
	}
	h.Type("Call Bob")
	h.Send(key(tea.KeyEnter))
	if m.mode != ModeBoard {
		t.Fatalf("expected board mode after submit")
	}
	p := m.currentPage()
	if got := p.rows(); got != "review,call-bob,reply,triage" {
		t.Fatalf("unexpected rows %q", got)
	}
	if e, _ := p.Selected(); e.ID != "call-bob" {
		t.Fatalf("expected new entry selected, got %s", e.ID)
	}
}

func TestNewEntryFormOnEmptyPage(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "archive"}))
	h.Send(key(tea.KeyCtrlN))
	h.Type("Old notes")
	h.Send(key(tea.KeyEnter))
	if got := h.Model().currentPage().rows(); got != "old-notes" {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestNewEntryFormCancel(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{RootPage: "inbox"}))
	h.Send(key(tea.KeyCtrlN))
	h.Type("draft")
	h.Send(key(tea.KeyEsc))
	m := h.Model()
	if m.mode != ModeBoard || m.form != nil {
		t.Fatalf("expected form closed")
	}
	if got := m.currentPage().rows(); got != "review,reply,triage" {
		t.Fatalf("expected rows unchanged, got %q", got)
	}
	if h.Quit() {
		t.Fatalf("esc in the form must not quit")
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := NewHarness(newTestModel(t, Options{}))
	h.Send(key(tea.KeyCtrlC))
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
}
