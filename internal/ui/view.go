package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/atomicstack/blendboard/internal/format/table"
	"github.com/atomicstack/blendboard/internal/logging/events"
	"github.com/atomicstack/blendboard/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerHelp = "↑/↓ move  enter open  alt+↑/↓ reorder  tab mark/swap  ctrl+n new  ctrl+x remove  ctrl+s sort  ctrl+k clear  esc back"

var styler = theme.NewStyler()

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	node          *dom.Node
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header()
	if m.mode == ModeEntryForm && m.form != nil {
		m.rowNodes = nil
		return m.viewEntryForm(header)
	}

	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Breadcrumb})
	}
	if current := m.currentPage(); current != nil {
		lines = append(lines, styledLine{text: current.Title, style: styles.Title})
		lines = append(lines, m.pageLines(current)...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHelp, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendLastErr != "":
		statusLine = styledLine{text: fmt.Sprintf("Reload failed: %s", m.backendLastErr), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{statusLine, {text: m.filterPrompt()}}, m.width)
	lines = append(lines, bottom...)

	m.rowNodes = make([]*dom.Node, len(lines))
	for i, line := range lines {
		m.rowNodes[i] = line.node
	}
	return renderLines(lines)
}

// pageLines renders the rows currently attached to the page's list element,
// limited to the viewport.
func (m *Model) pageLines(p *Page) []styledLine {
	m.syncViewport(p)
	rows := p.list.Container().Children()
	if len(rows) == 0 {
		msg := "(no entries)"
		if p.query.Text != "" {
			msg = fmt.Sprintf("No matches for %q", p.query.Text)
		}
		return []styledLine{{text: msg, style: styles.Empty}}
	}

	cells := make([][]string, len(rows))
	labels := make([]*dom.Node, len(rows))
	for i, row := range rows {
		var label, detail string
		for _, child := range row.Children() {
			switch {
			case child.HasClass(classLabel):
				label = child.Text()
				labels[i] = child
			case child.HasClass(classDetail):
				detail = child.Text()
			}
		}
		mark := " "
		if e, ok := p.entryAt(row); ok && p.Marked(e.ID) {
			mark = "✓"
		}
		row.ToggleClass(theme.ClassSelected, i == p.view.Cursor)
		row.ToggleClass(theme.ClassMarked, mark != " ")
		cells[i] = []string{mark, label, detail}
	}
	formatted := table.Format(cells, nil)

	start, end := 0, len(rows)
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(rows) > maxItems {
		start = p.view.Offset
		end = min(start+maxItems, len(rows))
	}
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		indicatorStyle := styles.EntryIndicator
		if i == p.view.Cursor {
			indicatorStyle = styles.SelectedIndicator
		}
		text := "▌ " + formatted[i]
		if m.width > 0 {
			if pad := m.width - lipgloss.Width(text); pad > 0 {
				text += strings.Repeat(" ", pad)
			}
		}
		lines = append(lines, styledLine{
			text:          text,
			style:         styler.StyleFor(rows[i]),
			prefixStyle:   indicatorStyle,
			highlightFrom: 1,
			node:          labels[i],
		})
	}
	return lines
}

func (m *Model) header() string {
	return strings.TrimSpace(m.board.crumb.Text())
}

// handleMouseMsg selects the entry under a left click.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Button != tea.MouseButtonLeft || ev.Action != tea.MouseActionPress {
		return nil
	}
	if ev.Y < 0 || ev.Y >= len(m.rowNodes) || m.rowNodes[ev.Y] == nil {
		return nil
	}
	current := m.currentPage()
	if current == nil {
		return nil
	}
	entry, ok := current.entryAt(m.rowNodes[ev.Y])
	if !ok {
		return nil
	}
	idx := current.list.IndexOf(entry)
	events.UI.Click(current.ID, entry.ID, idx)
	if idx < 0 {
		return nil
	}
	if idx == current.view.Cursor {
		return m.handleEnterKey()
	}
	current.view.Cursor = idx
	m.syncViewport(current)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport(m.currentPage())
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // title + status + filter prompt
	if m.header() != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText cuts text to width cells, ending in an ellipsis. Text may
// carry ANSI sequences from the filter prompt.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width-1), "…")
}
