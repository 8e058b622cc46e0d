package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// entryForm collects the label of a new entry.
type entryForm struct {
	input  textinput.Model
	pageID string
	index  int
	title  string
	help   string
	err    string
}

func newEntryForm(p *Page, index int) *entryForm {
	ti := textinput.New()
	ti.Placeholder = "entry label"
	ti.CharLimit = 128
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &entryForm{
		input:  ti,
		pageID: p.ID,
		index:  index,
		title:  fmt.Sprintf("New entry on %s", p.Title),
		help:   "enter add · ctrl+u clear · esc cancel",
	}
}

func (f *entryForm) Value() string { return strings.TrimSpace(f.input.Value()) }

// Update returns the input's command and whether the form finished or was
// cancelled.
func (f *entryForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			if f.Value() == "" {
				f.err = "label required"
				return nil, false, false
			}
			return nil, true, false
		}
	}
	f.err = ""
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

func (m *Model) startEntryForm() {
	current := m.currentPage()
	if current == nil {
		return
	}
	index := current.view.Cursor
	if current.list.Count() == 0 {
		index = 0
	}
	m.form = newEntryForm(current, index)
	m.mode = ModeEntryForm
}

func (m *Model) handleEntryForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.form == nil {
		m.mode = ModeBoard
		return false, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	cmd, done, cancel := m.form.Update(msg)
	if cancel {
		m.form = nil
		m.mode = ModeBoard
		return true, cmd
	}
	if done {
		form := m.form
		m.form = nil
		m.mode = ModeBoard
		if current := m.currentPage(); current == nil || current.ID != form.pageID {
			m.errMsg = fmt.Sprintf("page %s is no longer showing", form.pageID)
			return true, nil
		}
		return true, m.insertCmd(form.index, form.Value())
	}
	return true, cmd
}

func (m *Model) viewEntryForm(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	title := m.form.title
	if styles.FormLabel != nil {
		title = styles.FormLabel.Render(title)
	}
	lines = append(lines, title, "", m.form.input.View())
	if m.form.err != "" {
		lines = append(lines, "", styles.Error.Render(m.form.err))
	}
	lines = append(lines, "", m.form.help)
	return strings.Join(lines, "\n")
}
