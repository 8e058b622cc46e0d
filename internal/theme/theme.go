package theme

import (
	"github.com/atomicstack/blendboard/internal/dom"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the board.
type Styles struct {
	Title             *lipgloss.Style
	Breadcrumb        *lipgloss.Style
	Entry             *lipgloss.Style
	EntryIndicator    *lipgloss.Style
	SelectedIndicator *lipgloss.Style
	SelectedEntry     *lipgloss.Style
	MarkedEntry       *lipgloss.Style
	Detail            *lipgloss.Style
	Empty             *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Footer            *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Cursor            *lipgloss.Style
	FormLabel         *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Breadcrumb: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Entry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	EntryIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedEntry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	MarkedEntry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Detail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	FormLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// Class names understood by Styler.
const (
	ClassTitle    = "title"
	ClassCrumb    = "crumb"
	ClassEntry    = "entry"
	ClassSelected = "selected"
	ClassMarked   = "marked"
	ClassEmpty    = "empty"
)

// Styler maps dom classes onto the style set.
type Styler struct {
	Styles *Styles
}

// NewStyler returns a Styler over the default style set.
func NewStyler() Styler {
	return Styler{Styles: Default()}
}

// StyleFor implements dom.Styler. Selection wins over marking.
func (s Styler) StyleFor(n *dom.Node) *lipgloss.Style {
	st := s.Styles
	if st == nil {
		st = Default()
	}
	switch {
	case n.HasClass(ClassSelected):
		return st.SelectedEntry
	case n.HasClass(ClassMarked):
		return st.MarkedEntry
	case n.HasClass(ClassEntry):
		return st.Entry
	case n.HasClass(ClassTitle):
		return st.Title
	case n.HasClass(ClassCrumb):
		return st.Breadcrumb
	case n.HasClass(ClassEmpty):
		return st.Empty
	}
	return nil
}

var _ dom.Styler = Styler{}
