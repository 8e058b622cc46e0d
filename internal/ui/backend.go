package ui

import (
	"fmt"

	"github.com/atomicstack/blendboard/internal/backend"
	"github.com/atomicstack/blendboard/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent reconciles the board with a reloaded catalog. Load
// errors keep the current board and show in the status line.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err

	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.backendLastErr = res.Err.Error()
		return
	}
	m.backendLastErr = ""
	if c, ok := evt.Data.(catalog.Catalog); ok {
		m.board.Retitle(c)
	}
	if _, ok := m.board.Current(); !ok {
		m.startAt("")
	}
	if current := m.currentPage(); current != nil {
		current.view.Clamp(current.list.Count())
		m.syncViewport(current)
	}
	if res.Changed() {
		m.setInfo(fmt.Sprintf("Reloaded catalog (revision %d)", res.Revision))
	}
}
