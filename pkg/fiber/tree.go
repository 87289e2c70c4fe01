package fiber

import (
	"fmt"
	"strings"

	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// Tree is one generation of fibers.
type Tree struct {
	gen    uint64
	fibers []*Fiber
}

// NewTree creates a generation whose root fiber owns container and renders
// children. alternate links the root to the previous generation's root.
func NewTree(gen uint64, container host.Node, children []*vdom.Element, alternate Ref) *Tree {
	t := &Tree{gen: gen, fibers: make([]*Fiber, 0, 16)}
	t.fibers = append(t.fibers, &Fiber{
		Props:     vdom.Props{Children: children},
		Node:      container,
		Parent:    NoID,
		Child:     NoID,
		Sibling:   NoID,
		Alternate: alternate,
	})
	return t
}

// Gen returns the tree's generation.
func (t *Tree) Gen() uint64 { return t.gen }

// Len returns the number of fibers in the tree.
func (t *Tree) Len() int { return len(t.fibers) }

// Root returns the root fiber.
func (t *Tree) Root() *Fiber { return t.fibers[RootID] }

// Get returns the fiber with the given id, or nil.
func (t *Tree) Get(id ID) *Fiber {
	if t == nil || id < 0 || int(id) >= len(t.fibers) {
		return nil
	}
	return t.fibers[id]
}

// Ref returns a generation-tagged reference to id.
func (t *Tree) Ref(id ID) Ref {
	return Ref{Gen: t.gen, ID: id}
}

// Resolve returns the fiber r names if r belongs to this tree.
func (t *Tree) Resolve(r Ref) *Fiber {
	if t == nil || !r.Valid() || r.Gen != t.gen {
		return nil
	}
	return t.Get(r.ID)
}

// Add appends f under parent and returns its id. Parent is set; Child and
// Sibling are reset and left for the caller to link.
func (t *Tree) Add(f *Fiber, parent ID) ID {
	f.Parent = parent
	f.Child = NoID
	f.Sibling = NoID
	t.fibers = append(t.fibers, f)
	return ID(len(t.fibers) - 1)
}

// Next returns the unit of work after id in depth-first order: the child,
// else the nearest sibling of id or an ancestor, else NoID.
func (t *Tree) Next(id ID) ID {
	f := t.Get(id)
	if f == nil {
		return NoID
	}
	if f.Child.Valid() {
		return f.Child
	}
	for cur := id; cur.Valid(); cur = t.fibers[cur].Parent {
		if s := t.fibers[cur].Sibling; s.Valid() {
			return s
		}
	}
	return NoID
}

// HostParent returns the nearest ancestor of id that owns a host node.
func (t *Tree) HostParent(id ID) *Fiber {
	f := t.Get(id)
	if f == nil {
		return nil
	}
	for p := f.Parent; p.Valid(); p = t.fibers[p].Parent {
		if t.fibers[p].HasNode() {
			return t.fibers[p]
		}
	}
	return nil
}

// TopHostNodes returns the host nodes directly representing the subtree
// rooted at id: the fiber's own node, or for a function fiber the
// top-most host nodes of all its descendants, in order.
func (t *Tree) TopHostNodes(id ID) []host.Node {
	var out []host.Node
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := t.Get(cur)
		if f == nil {
			continue
		}
		if f.HasNode() {
			out = append(out, f.Node)
			continue
		}
		// Push children in reverse so they pop in order.
		var kids []ID
		for c := f.Child; c.Valid(); c = t.fibers[c].Sibling {
			kids = append(kids, c)
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// Children returns the ids of id's children in order.
func (t *Tree) Children(id ID) []ID {
	f := t.Get(id)
	if f == nil {
		return nil
	}
	var out []ID
	for c := f.Child; c.Valid(); c = t.fibers[c].Sibling {
		out = append(out, c)
	}
	return out
}

// Walk visits the tree in pre-order with an explicit stack. Returning false
// from fn skips the fiber's children.
func (t *Tree) Walk(fn func(id ID, f *Fiber, depth int) bool) {
	type frame struct {
		id    ID
		depth int
	}
	stack := []frame{{RootID, 0}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f := t.Get(fr.id)
		if f == nil || !fn(fr.id, f, fr.depth) {
			continue
		}
		kids := t.Children(fr.id)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], fr.depth + 1})
		}
	}
}

// String renders an indented outline of the tree.
func (t *Tree) String() string {
	var b strings.Builder
	t.Walk(func(id ID, f *Fiber, depth int) bool {
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), f.Type)
		if f.Type.Kind == vdom.KindText {
			fmt.Fprintf(&b, " %q", f.Props.Text())
		}
		if f.Effect != EffectNone {
			fmt.Fprintf(&b, " [%s]", f.Effect)
		}
		b.WriteByte('\n')
		return true
	})
	return b.String()
}
