package memdom

import (
	"sync"

	"github.com/cockroachdb/errors"

	verrors "github.com/viridian-dev/viridian/internal/errors"
	"github.com/viridian-dev/viridian/pkg/host"
)

// Document is an in-memory host tree rooted at a body element.
type Document struct {
	mu     sync.RWMutex
	nextID int
	body   *Node
}

var _ host.Host = (*Document)(nil)

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newNode(ElementNode, "body")
	return d
}

// Body returns the document's root container.
func (d *Document) Body() *Node {
	return d.body
}

// NodeByID finds an attached node (the body or one of its descendants) by
// id. Detached nodes are not reachable.
func (d *Document) NodeByID(id int) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var found *Node
	d.body.walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.id == id {
			found = n
			return false
		}
		return true
	}, 0)
	return found, found != nil
}

// QueryAttr finds the first attached node, in document order, whose
// attribute name equals value.
func (d *Document) QueryAttr(name, value string) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var found *Node
	d.body.walk(func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if v, ok := n.attrs[name]; ok && v == value {
			found = n
			return false
		}
		return true
	}, 0)
	return found, found != nil
}

func (d *Document) newNode(typ NodeType, tag string) *Node {
	d.nextID++
	return &Node{doc: d, id: d.nextID, typ: typ, tag: tag}
}

func (d *Document) node(n host.Node) (*Node, error) {
	nd, ok := n.(*Node)
	if !ok || nd == nil || nd.doc != d {
		return nil, verrors.New("E150").Wrap(errors.Newf("%T", n))
	}
	return nd, nil
}

// CreateElement implements host.Host.
func (d *Document) CreateElement(tag string) (host.Node, error) {
	if tag == "" {
		return nil, errors.New("memdom: empty tag")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.newNode(ElementNode, tag), nil
}

// CreateTextNode implements host.Host.
func (d *Document) CreateTextNode(text string) (host.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.newNode(TextNode, "")
	n.text = text
	return n, nil
}

// AppendChild implements host.Host. A child already attached elsewhere is
// moved, as in the browser DOM.
func (d *Document) AppendChild(parent, child host.Node) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if p.typ == TextNode {
		return errors.New("memdom: text nodes cannot have children")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for a := p; a != nil; a = a.parent {
		if a == c {
			return errors.New("memdom: cannot append an ancestor")
		}
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	c.parent = p
	p.children = append(p.children, c)
	return nil
}

// RemoveChild implements host.Host.
func (d *Document) RemoveChild(parent, child host.Node) error {
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if c.parent != p {
		return verrors.New("E151").WithOp("removeChild")
	}
	p.detach(c)
	c.parent = nil
	return nil
}

func (n *Node) detach(c *Node) {
	for i, x := range n.children {
		if x == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// GetAttribute implements host.Host.
func (d *Document) GetAttribute(node host.Node, name string) (string, bool, error) {
	n, err := d.node(node)
	if err != nil {
		return "", false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if n.typ == TextNode {
		if name == host.NodeValue {
			return n.text, true, nil
		}
		return "", false, nil
	}
	v, ok := n.attrs[name]
	return v, ok, nil
}

// SetAttribute implements host.Host.
func (d *Document) SetAttribute(node host.Node, name, value string) error {
	n, err := d.node(node)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.typ == TextNode {
		if name != host.NodeValue {
			return errors.Newf("memdom: text nodes have no attribute %q", name)
		}
		n.text = value
		return nil
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return nil
}

// RemoveAttribute implements host.Host.
func (d *Document) RemoveAttribute(node host.Node, name string) error {
	n, err := d.node(node)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.typ == TextNode {
		if name == host.NodeValue {
			n.text = ""
		}
		return nil
	}
	delete(n.attrs, name)
	return nil
}

// AddEventListener implements host.Host. Adding the same listener twice
// for one event is a no-op.
func (d *Document) AddEventListener(node host.Node, event string, l *host.Listener) error {
	n, err := d.node(node)
	if err != nil {
		return err
	}
	if l == nil {
		return errors.New("memdom: nil listener")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range n.listeners {
		if e.event == event && e.listener == l {
			return nil
		}
	}
	n.listeners = append(n.listeners, listenerEntry{event: event, listener: l})
	return nil
}

// RemoveEventListener implements host.Host.
func (d *Document) RemoveEventListener(node host.Node, event string, l *host.Listener) error {
	n, err := d.node(node)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, e := range n.listeners {
		if e.event == event && e.listener == l {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			return nil
		}
	}
	return nil
}

// Dispatch delivers an event to the listeners registered on node for
// ev.Type. It returns the number of listeners invoked.
func (d *Document) Dispatch(node *Node, ev host.Event) int {
	d.mu.RLock()
	var ls []*host.Listener
	for _, e := range node.listeners {
		if e.event == ev.Type {
			ls = append(ls, e.listener)
		}
	}
	d.mu.RUnlock()

	ev.Target = node
	for _, l := range ls {
		l.Handle(ev)
	}
	return len(ls)
}

// DispatchByID looks up a node by id and dispatches ev to it.
func (d *Document) DispatchByID(id int, ev host.Event) (int, error) {
	n, ok := d.NodeByID(id)
	if !ok {
		return 0, errors.Newf("memdom: no node with id %d", id)
	}
	return d.Dispatch(n, ev), nil
}
