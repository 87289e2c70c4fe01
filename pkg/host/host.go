// Package host defines the mutable tree the renderer keeps in sync.
//
// The engine never touches a concrete DOM. Everything it does to the host
// tree goes through Host, so the same engine drives an in-memory tree
// (package memdom), a recording wrapper in tests, or a real browser binding.
package host

// Node is an opaque handle to a host-tree node. Only the Host that created
// a node can interpret it.
type Node any

// Host is the set of host-tree mutation primitives consumed by the engine.
// Every method may fail; the engine treats any error as a host operation
// failure for the running render pass.
type Host interface {
	// CreateElement creates a detached element node of the given kind.
	CreateElement(tag string) (Node, error)

	// CreateTextNode creates a detached text node.
	CreateTextNode(text string) (Node, error)

	// AppendChild appends child as the last child of parent.
	AppendChild(parent, child Node) error

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node) error

	// GetAttribute returns the named attribute and whether it is set.
	GetAttribute(node Node, name string) (string, bool, error)

	// SetAttribute sets the named attribute. On text nodes the attribute
	// NodeValue holds the text content.
	SetAttribute(node Node, name, value string) error

	// RemoveAttribute clears the named attribute.
	RemoveAttribute(node Node, name string) error

	// AddEventListener registers l for events named event ("click").
	AddEventListener(node Node, event string, l *Listener) error

	// RemoveEventListener unregisters l. Removing an unknown listener is
	// not an error.
	RemoveEventListener(node Node, event string, l *Listener) error
}

// NodeValue is the attribute name carrying a text node's content.
const NodeValue = "nodeValue"
