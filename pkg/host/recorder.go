package host

import (
	"fmt"
	"strings"
	"sync"
)

// OpKind identifies a recorded host operation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota + 1
	OpCreateText
	OpAppendChild
	OpRemoveChild
	OpSetAttribute
	OpRemoveAttribute
	OpAddListener
	OpRemoveListener
)

// String returns the host method name of the operation.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "createElement"
	case OpCreateText:
		return "createTextNode"
	case OpAppendChild:
		return "appendChild"
	case OpRemoveChild:
		return "removeChild"
	case OpSetAttribute:
		return "setAttribute"
	case OpRemoveAttribute:
		return "removeAttribute"
	case OpAddListener:
		return "addEventListener"
	case OpRemoveListener:
		return "removeEventListener"
	default:
		return "unknown"
	}
}

// Op is one recorded mutation.
type Op struct {
	Kind   OpKind
	Node   Node
	Target Node   // child for append/remove
	Name   string // tag, attribute or event name
	Value  string
}

// String renders the op as "kind name=value".
func (o Op) String() string {
	switch o.Kind {
	case OpSetAttribute:
		return fmt.Sprintf("%s %s=%q", o.Kind, o.Name, o.Value)
	case OpCreateText:
		return fmt.Sprintf("%s %q", o.Kind, o.Value)
	case OpAppendChild, OpRemoveChild:
		return o.Kind.String()
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.Name)
	}
}

// Recorder wraps a Host and records every successful mutation. Failed
// calls are passed through unrecorded. Reads are not recorded.
type Recorder struct {
	Host

	mu  sync.Mutex
	ops []Op
}

// NewRecorder wraps h.
func NewRecorder(h Host) *Recorder {
	return &Recorder{Host: h}
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Count returns how many recorded operations have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards the recorded operations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

// String lists the recorded operations, one per line.
func (r *Recorder) String() string {
	ops := r.Ops()
	lines := make([]string, len(ops))
	for i, op := range ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) CreateElement(tag string) (Node, error) {
	n, err := r.Host.CreateElement(tag)
	if err == nil {
		r.record(Op{Kind: OpCreateElement, Node: n, Name: tag})
	}
	return n, err
}

func (r *Recorder) CreateTextNode(text string) (Node, error) {
	n, err := r.Host.CreateTextNode(text)
	if err == nil {
		r.record(Op{Kind: OpCreateText, Node: n, Value: text})
	}
	return n, err
}

func (r *Recorder) AppendChild(parent, child Node) error {
	err := r.Host.AppendChild(parent, child)
	if err == nil {
		r.record(Op{Kind: OpAppendChild, Node: parent, Target: child})
	}
	return err
}

func (r *Recorder) RemoveChild(parent, child Node) error {
	err := r.Host.RemoveChild(parent, child)
	if err == nil {
		r.record(Op{Kind: OpRemoveChild, Node: parent, Target: child})
	}
	return err
}

func (r *Recorder) SetAttribute(node Node, name, value string) error {
	err := r.Host.SetAttribute(node, name, value)
	if err == nil {
		r.record(Op{Kind: OpSetAttribute, Node: node, Name: name, Value: value})
	}
	return err
}

func (r *Recorder) RemoveAttribute(node Node, name string) error {
	err := r.Host.RemoveAttribute(node, name)
	if err == nil {
		r.record(Op{Kind: OpRemoveAttribute, Node: node, Name: name})
	}
	return err
}

func (r *Recorder) AddEventListener(node Node, event string, l *Listener) error {
	err := r.Host.AddEventListener(node, event, l)
	if err == nil {
		r.record(Op{Kind: OpAddListener, Node: node, Name: event})
	}
	return err
}

func (r *Recorder) RemoveEventListener(node Node, event string, l *Listener) error {
	err := r.Host.RemoveEventListener(node, event, l)
	if err == nil {
		r.record(Op{Kind: OpRemoveListener, Node: node, Name: event})
	}
	return err
}
