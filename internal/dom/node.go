// Package dom provides the retained node tree the UI layer mirrors collections
// into. It covers ordered child insertion and removal, classes, attributes and
// ancestor lookup, and renders to terminal lines through Lip Gloss.
package dom

import (
	"errors"
	"slices"
	"strings"
	"sync/atomic"
)

// Kind distinguishes element, text and fragment nodes.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindFragment
)

// ErrNotChild is returned when a reference node does not belong to the parent
// an operation was invoked on.
var ErrNotChild = errors.New("dom: node is not a child of this parent")

var nodeIDCounter atomic.Uint32

// Node is a single tree element. Text nodes carry content and never have
// children; fragments are off-tree holders that are never rendered.
type Node struct {
	ID   uint32
	Kind Kind
	Tag  string

	text     string
	classes  []string
	attrs    map[string]string
	parent   *Node
	children []*Node
}

func newNode(kind Kind, tag string) *Node {
	return &Node{ID: nodeIDCounter.Add(1), Kind: kind, Tag: tag}
}

// NewElement creates an element node carrying the given classes.
func NewElement(tag string, classes ...string) *Node {
	n := newNode(KindElement, tag)
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	n := newNode(KindText, "#text")
	n.text = text
	return n
}

// NewFragment creates a detached holder for nodes that are kept alive but not
// displayed.
func NewFragment() *Node {
	return newNode(KindFragment, "#fragment")
}

// NewTextElement creates an element holding a single text child.
func NewTextElement(tag, text string, classes ...string) *Node {
	n := NewElement(tag, classes...)
	n.AppendChild(NewText(text))
	return n
}

// Parent returns the node's parent or nil when detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice must not be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// AppendChild adds child as the last child, detaching it from any previous
// parent first. Panics on nil children, text parents and cycles.
func (n *Node) AppendChild(child *Node) {
	n.checkAdoptable(child)
	child.detach()
	child.parent = n
	n.children = append(n.children, child)
}

// InsertBefore places child immediately before ref. A nil ref appends.
func (n *Node) InsertBefore(child, ref *Node) error {
	if ref == nil {
		n.AppendChild(child)
		return nil
	}
	if ref.parent != n {
		return ErrNotChild
	}
	if child == ref {
		return nil
	}
	n.checkAdoptable(child)
	child.detach()
	index := n.IndexOf(ref)
	child.parent = n
	n.children = slices.Insert(n.children, index, child)
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return ErrNotChild
	}
	child.detach()
	return nil
}

// Remove detaches n from its parent. No-op when already detached.
func (n *Node) Remove() {
	n.detach()
}

// RemoveChildren detaches every child.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.parent = nil
	}
	n.children = n.children[:0]
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.IndexOf(n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

func (n *Node) checkAdoptable(child *Node) {
	if child == nil {
		panic("dom: cannot add nil child")
	}
	if n.Kind == KindText {
		panic("dom: text nodes cannot have children")
	}
	if child == n || child.Contains(n) {
		panic("dom: adding child would create a cycle")
	}
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Closest walks from n towards the root and returns the first node carrying
// class.
func (n *Node) Closest(class string) *Node {
	for p := n; p != nil; p = p.parent {
		if p.HasClass(class) {
			return p
		}
	}
	return nil
}

// Text returns the content of a text node, or the concatenated content of
// the direct text children of an element.
func (n *Node) Text() string {
	if n.Kind == KindText {
		return n.text
	}
	var b strings.Builder
	for _, child := range n.children {
		if child.Kind == KindText {
			b.WriteString(child.text)
		}
	}
	return b.String()
}

// SetText replaces the content of a text node, or the text children of an
// element with a single text node.
func (n *Node) SetText(text string) {
	if n.Kind == KindText {
		n.text = text
		return
	}
	kept := n.children[:0]
	for _, child := range n.children {
		if child.Kind == KindText {
			child.parent = nil
			continue
		}
		kept = append(kept, child)
	}
	n.children = kept
	t := NewText(text)
	t.parent = n
	n.children = slices.Insert(n.children, 0, t)
}

// Classes returns the node's classes in insertion order.
func (n *Node) Classes() []string {
	return n.classes
}

// HasClass reports whether class is set.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// AddClass sets class when missing.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

// RemoveClass clears class.
func (n *Node) RemoveClass(class string) {
	if i := slices.Index(n.classes, class); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
}

// ToggleClass sets or clears class depending on on.
func (n *Node) ToggleClass(class string, on bool) {
	if on {
		n.AddClass(class)
		return
	}
	n.RemoveClass(class)
}

// SetAttr stores an attribute value.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Walk visits n and its descendants depth first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
