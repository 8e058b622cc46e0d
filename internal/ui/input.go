package ui

import (
	"unicode"

	"github.com/atomicstack/blendboard/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(p *Page, before int) {
	if p == nil {
		return
	}
	if before != p.query.Pos() {
		m.filterCursorDirty = true
	}
}

// editQuery applies edit to the current page's query. Text changes re-run
// the filter; pure cursor moves only trace.
func (m *Model) editQuery(edit func(q *queryEdit) bool) bool {
	current := m.currentPage()
	if current == nil {
		return false
	}
	before := current.query.Pos()
	text := current.query.Text
	if !edit(&queryEdit{page: current}) {
		return false
	}
	m.noteFilterCursorChange(current, before)
	if current.query.Text != text {
		current.applyFilter()
		m.forceClearInfo()
		m.errMsg = ""
		m.syncViewport(current)
	}
	return true
}

type queryEdit struct {
	page *Page
}

func (e *queryEdit) id() string { return e.page.ID }

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	current := m.currentPage()
	if current == nil {
		return false, nil
	}
	switch msg.String() {
	case "ctrl+u":
		return m.editQuery(func(e *queryEdit) bool {
			if e.page.query.Text == "" {
				return false
			}
			e.page.query.Set("", 0)
			events.Filter.Cleared(e.id())
			return true
		}), nil
	case "ctrl+w":
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.DeleteWordBackward() {
				return false
			}
			events.Filter.WordBackspace(e.id(), e.page.query.Text)
			return true
		}), nil
	case "ctrl+a":
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.MoveStart() {
				return false
			}
			events.Filter.Cursor(e.id(), e.page.query.Cursor)
			return true
		}), nil
	case "ctrl+e":
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.MoveEnd() {
				return false
			}
			events.Filter.Cursor(e.id(), e.page.query.Cursor)
			return true
		}), nil
	case "alt+b":
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.MoveWordBackward() {
				return false
			}
			events.Filter.CursorWord(e.id(), e.page.query.Cursor)
			return true
		}), nil
	case "alt+f":
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.MoveWordForward() {
				return false
			}
			events.Filter.CursorWord(e.id(), e.page.query.Cursor)
			return true
		}), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune(), nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes)), nil
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyLeft:
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.MoveRuneBackward() {
				return false
			}
			events.Filter.Cursor(e.id(), e.page.query.Cursor)
			return true
		}), nil
	case tea.KeyRight:
		return m.editQuery(func(e *queryEdit) bool {
			if !e.page.query.MoveRuneForward() {
				return false
			}
			events.Filter.Cursor(e.id(), e.page.query.Cursor)
			return true
		}), nil
	}
	return false, nil
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	return m.editQuery(func(e *queryEdit) bool {
		if !e.page.query.Insert(text) {
			return false
		}
		events.Filter.Append(e.id(), e.page.query.Text)
		return true
	})
}

func (m *Model) removeFilterRune() bool {
	return m.editQuery(func(e *queryEdit) bool {
		if !e.page.query.DeleteRuneBackward() {
			return false
		}
		events.Filter.Backspace(e.id(), e.page.query.Text)
		return true
	})
}

func (m *Model) filterPrompt() string {
	current := m.currentPage()
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := ""
	pos := 0
	if current != nil {
		text = current.query.Text
		pos = current.query.Pos()
	}
	if text == "" {
		runes := []rune("(type to filter)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos = max(0, min(pos, len(runes)))
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
