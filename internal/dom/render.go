package dom

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AttrHidden marks an element whose subtree is skipped by Layout.
const AttrHidden = "hidden"

// Styler picks the style used for the line an element produces.
type Styler interface {
	StyleFor(n *Node) *lipgloss.Style
}

// PlainStyler renders every line unstyled.
type PlainStyler struct{}

func (PlainStyler) StyleFor(*Node) *lipgloss.Style { return nil }

// Line is a rendered row together with the element that produced it.
type Line struct {
	Node  *Node
	Text  string
	Depth int
}

// Layout flattens the tree into lines. Every element is a block: its direct
// text forms one line (when non-empty) followed by the lines of its element
// children. Fragments and hidden elements are skipped.
func Layout(root *Node) []Line {
	if root == nil {
		return nil
	}
	var lines []Line
	layoutInto(root, 0, &lines)
	return lines
}

func layoutInto(n *Node, depth int, lines *[]Line) {
	switch n.Kind {
	case KindFragment, KindText:
		return
	}
	if _, hidden := n.Attr(AttrHidden); hidden {
		return
	}
	if text := n.Text(); text != "" {
		*lines = append(*lines, Line{Node: n, Text: text, Depth: depth})
	}
	for _, child := range n.children {
		if child.Kind == KindElement {
			layoutInto(child, depth+1, lines)
		}
	}
}

// Render lays out root and styles each line with styler.
func Render(root *Node, styler Styler) string {
	return RenderLines(Layout(root), styler)
}

// RenderLines styles pre-computed lines.
func RenderLines(lines []Line, styler Styler) string {
	if styler == nil {
		styler = PlainStyler{}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.Text
		if style := styler.StyleFor(line.Node); style != nil {
			text = style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}
