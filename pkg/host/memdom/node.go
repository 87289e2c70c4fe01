package memdom

import (
	"sort"
	"strings"

	"github.com/viridian-dev/viridian/pkg/host"
)

// NodeType discriminates element and text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

type listenerEntry struct {
	event    string
	listener *host.Listener
}

// Node is a node of a Document. Fields are guarded by the owning
// document's lock; read them through the accessor methods.
type Node struct {
	doc *Document
	id  int

	typ  NodeType
	tag  string
	text string

	attrs     map[string]string
	listeners []listenerEntry

	parent   *Node
	children []*Node
}

// ID returns the document-unique node id.
func (n *Node) ID() int { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the content of a text node.
func (n *Node) Text() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.text
}

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return append([]*Node(nil), n.children...)
}

// Attr returns the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns the attributes sorted by name.
func (n *Node) Attrs() [][2]string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.sortedAttrs()
}

func (n *Node) sortedAttrs() [][2]string {
	out := make([][2]string, 0, len(n.attrs))
	for k, v := range n.attrs {
		out = append(out, [2]string{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Events returns the names of events with at least one listener, sorted.
func (n *Node) Events() []string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, e := range n.listeners {
		if !seen[e.event] {
			seen[e.event] = true
			out = append(out, e.event)
		}
	}
	sort.Strings(out)
	return out
}

// ListenerCount returns the number of listeners registered for event.
func (n *Node) ListenerCount(event string) int {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	c := 0
	for _, e := range n.listeners {
		if e.event == event {
			c++
		}
	}
	return c
}

// TextContent concatenates the text of every descendant text node.
func (n *Node) TextContent() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	var b strings.Builder
	n.textContent(&b)
	return b.String()
}

func (n *Node) textContent(b *strings.Builder) {
	if n.typ == TextNode {
		b.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.textContent(b)
	}
}

// Walk visits n and its descendants in document order while holding the
// document's read lock. fn must not call back into the document.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Snapshot is an immutable copy of a node subtree, safe to read without
// locking.
type Snapshot struct {
	ID       int
	Type     NodeType
	Tag      string
	Text     string
	Attrs    [][2]string
	Events   []string
	Children []*Snapshot
}

// Snapshot copies the subtree rooted at n.
func (n *Node) Snapshot() *Snapshot {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.snapshot()
}

func (n *Node) snapshot() *Snapshot {
	s := &Snapshot{
		ID:    n.id,
		Type:  n.typ,
		Tag:   n.tag,
		Text:  n.text,
		Attrs: n.sortedAttrs(),
	}
	seen := make(map[string]bool)
	for _, e := range n.listeners {
		if !seen[e.event] {
			seen[e.event] = true
			s.Events = append(s.Events, e.event)
		}
	}
	sort.Strings(s.Events)
	for _, c := range n.children {
		s.Children = append(s.Children, c.snapshot())
	}
	return s
}
