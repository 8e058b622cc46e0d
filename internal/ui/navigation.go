package ui

import (
	"fmt"

	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/atomicstack/blendboard/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentPage()
	if current == nil {
		return tea.Quit
	}
	moved, err := m.board.Back()
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if !moved {
		return tea.Quit
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentPage()
	if current == nil {
		return nil
	}
	entry, ok := current.Selected()
	if !ok {
		return nil
	}
	events.UI.Open(current.ID, entry.ID, entry.Target)
	if entry.Target == "" {
		m.setInfo(fmt.Sprintf("%s has no page to open", entry.Label))
		return nil
	}
	before := current.query.Pos()
	current.clearQuery()
	m.noteFilterCursorChange(current, before)
	current.selectEntry(entry)
	if err := m.board.Open(entry.Target); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) moveCursor(move func(p *Page) bool) {
	current := m.currentPage()
	if current == nil {
		return
	}
	if move(current) {
		events.UI.Cursor(current.ID, current.view.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) moveCursorUp() {
	m.moveCursor(func(p *Page) bool { return p.view.Step(-1, p.list.Count()) })
}

func (m *Model) moveCursorDown() {
	m.moveCursor(func(p *Page) bool { return p.view.Step(1, p.list.Count()) })
}

func (m *Model) moveCursorPageUp() {
	m.moveCursor(func(p *Page) bool { return p.view.PageUp(m.maxVisibleItems(), p.list.Count()) })
}

func (m *Model) moveCursorPageDown() {
	m.moveCursor(func(p *Page) bool { return p.view.PageDown(m.maxVisibleItems(), p.list.Count()) })
}

func (m *Model) moveCursorHome() {
	m.moveCursor(func(p *Page) bool { return p.view.Home(p.list.Count()) })
}

func (m *Model) moveCursorEnd() {
	m.moveCursor(func(p *Page) bool { return p.view.End(p.list.Count()) })
}

func (m *Model) syncViewport(p *Page) {
	if p == nil {
		return
	}
	p.view.EnsureVisible(m.maxVisibleItems(), p.list.Count())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeBoard {
		return nil
	}
	if handled, cmd := m.handleTextInput(keyMsg); handled {
		return cmd
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	case "alt+up":
		return m.moveEntryCmd(-1)
	case "alt+down":
		return m.moveEntryCmd(1)
	case "ctrl+s":
		return m.sortCmd()
	case "ctrl+x":
		return m.removeCmd()
	case "ctrl+n":
		m.startEntryForm()
	case "tab":
		return m.markCmd()
	case "ctrl+k":
		return m.truncateCmd()
	}
	return nil
}

func (m *Model) pageRequest(id, label string, do func(p *Page) (string, error)) tea.Cmd {
	current := m.currentPage()
	if current == nil {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:    id,
		Label: label,
		Do:    func() (string, error) { return do(current) },
	})
}

func (m *Model) moveEntryCmd(delta int) tea.Cmd {
	return m.pageRequest("entry:move", "Move entry", func(p *Page) (string, error) {
		if _, err := p.Move(delta); err != nil {
			return "", err
		}
		return "", nil
	})
}

func (m *Model) sortCmd() tea.Cmd {
	return m.pageRequest("entry:sort", "Sort entries", func(p *Page) (string, error) {
		p.SortByLabel()
		return fmt.Sprintf("Sorted %s", p.Title), nil
	})
}

func (m *Model) removeCmd() tea.Cmd {
	return m.pageRequest("entry:remove", "Remove entry", func(p *Page) (string, error) {
		e, ok := p.Selected()
		if !ok {
			return "", ErrNoSelection
		}
		if err := p.Remove(e); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %s", e.Label), nil
	})
}

func (m *Model) markCmd() tea.Cmd {
	return m.pageRequest("entry:mark", "Mark entry", func(p *Page) (string, error) {
		e, ok := p.Selected()
		if !ok {
			return "", ErrNoSelection
		}
		events.UI.Mark(p.ID, e.ID)
		other, err := p.ToggleMark()
		if err != nil {
			return "", err
		}
		if other == nil {
			return "", nil
		}
		return fmt.Sprintf("Swapped %s and %s", other.Label, e.Label), nil
	})
}

func (m *Model) truncateCmd() tea.Cmd {
	return m.pageRequest("entry:truncate", "Clear page", func(p *Page) (string, error) {
		p.Truncate()
		return fmt.Sprintf("Cleared %s", p.Title), nil
	})
}

func (m *Model) insertCmd(index int, label string) tea.Cmd {
	return m.pageRequest("entry:insert", "Insert entry", func(p *Page) (string, error) {
		e := &Entry{ID: p.uniqueID(label), Label: label}
		if err := p.InsertAt(index, e); err != nil {
			return "", err
		}
		p.selectEntry(e)
		return fmt.Sprintf("Added %s", label), nil
	})
}
