package ui

import (
	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/atomicstack/blendboard/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if current := m.currentPage(); current != nil {
		current.view.Clamp(current.list.Count())
		m.syncViewport(current)
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return nil
}
