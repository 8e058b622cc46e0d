package ui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/blendboard/internal/backend"
	"github.com/atomicstack/blendboard/internal/catalog"
	"github.com/atomicstack/blendboard/internal/data/dispatcher"
	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/atomicstack/blendboard/internal/state"
	"github.com/atomicstack/blendboard/internal/theme"
	"github.com/atomicstack/blendboard/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeBoard Mode = iota
	ModeEntryForm
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Catalog    catalog.Catalog
	Source     string
	Width      int
	Height     int
	ShowFooter bool
	Scheduled  bool
	RootPage   string
}

// Model implements the Bubble Tea model for the board.
type Model struct {
	board *Board

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	backend        *backend.Watcher
	backendState   map[backend.Kind]error
	backendLastErr string
	store          state.CatalogStore
	dispatcher     *dispatcher.Dispatcher

	form              *entryForm
	filterCursor      cursor.Model
	filterCursorDirty bool

	// rowNodes maps each rendered line to the label element it shows, for
	// mouse hit testing. Lines without an entry hold nil.
	rowNodes []*dom.Node

	handlers map[reflect.Type]msgHandler

	bus  *command.Bus
	mode Mode
}

// NewModel builds the board from opts.Catalog and opens the root page.
func NewModel(opts Options, watcher *backend.Watcher) (*Model, error) {
	board, err := NewBoard(opts.Catalog, opts.Scheduled)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	store := state.NewCatalogStore()
	store.Set(opts.Catalog)
	m := &Model{
		board:        board,
		bus:          command.New(),
		backend:      watcher,
		backendState: map[backend.Kind]error{},
		showFooter:   opts.ShowFooter,
		mode:         ModeBoard,
		store:        store,
		dispatcher:   dispatcher.New(store, board, opts.Source),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	c.SetMode(cursor.CursorStatic)
	m.filterCursor = c
	m.startAt(opts.RootPage)
	board.Flush()
	m.registerHandlers()
	return m, nil
}

func (m *Model) startAt(requested string) {
	id := strings.ToLower(strings.TrimSpace(requested))
	if id != "" {
		if err := m.board.Start(id); err == nil {
			return
		}
		m.errMsg = fmt.Sprintf("Unknown page %q", strings.TrimSpace(requested))
	}
	first, ok := m.board.Stack().GetFirst()
	if !ok {
		return
	}
	if err := m.board.Start(first.ID); err != nil {
		m.errMsg = err.Error()
	}
}

// Board exposes the board the model drives.
func (m *Model) Board() *Board { return m.board }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeEntryForm:
		return m.handleEntryForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate runs the board's queued transitions and listeners so the next
// View sees a settled tree.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.board.Flush()
	if current := m.currentPage(); current != nil {
		m.syncViewport(current)
	}
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) currentPage() *Page {
	p, ok := m.board.Current()
	if !ok {
		return nil
	}
	return p
}
