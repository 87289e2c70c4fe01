package vdom

import (
	"sort"
	"strings"

	"github.com/viridian-dev/viridian/pkg/host"
)

// Attr is a single attribute. An Attr with an empty Key is a no-op, which is
// what boolean helpers return for false.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty reports whether the attribute is a no-op.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler binds a listener to an event name ("click", "input").
type EventHandler struct {
	Event    string
	Listener *host.Listener
}

// Style is an inline style map. It is serialized in key order.
type Style map[string]string

// Props is the tagged property set of an element.
type Props struct {
	Attrs    []Attr
	Handlers []EventHandler
	Style    Style
	Children []*Element
}

// Attr returns the value of the named attribute.
func (p Props) Attr(name string) (string, bool) {
	for _, a := range p.Attrs {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// Handler returns the listener for event, or nil.
func (p Props) Handler(event string) *host.Listener {
	for _, h := range p.Handlers {
		if h.Event == event {
			return h.Listener
		}
	}
	return nil
}

// Text returns the content of a text element.
func (p Props) Text() string {
	v, _ := p.Attr(host.NodeValue)
	return v
}

// StyleString serializes Style as "k: v; k2: v2" in key order.
func (p Props) StyleString() string {
	if len(p.Style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p.Style))
	for k := range p.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + p.Style[k]
	}
	return strings.Join(parts, "; ")
}

func (p *Props) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	for i := range p.Attrs {
		if p.Attrs[i].Key == a.Key {
			p.Attrs[i].Value = a.Value
			return
		}
	}
	p.Attrs = append(p.Attrs, a)
}

func (p *Props) setHandler(h EventHandler) {
	if h.Event == "" || h.Listener == nil {
		return
	}
	for i := range p.Handlers {
		if p.Handlers[i].Event == h.Event {
			p.Handlers[i].Listener = h.Listener
			return
		}
	}
	p.Handlers = append(p.Handlers, h)
}

func (p *Props) setStyle(s Style) {
	if len(s) == 0 {
		return
	}
	if p.Style == nil {
		p.Style = make(Style, len(s))
	}
	for k, v := range s {
		p.Style[k] = v
	}
}

// add sorts one factory argument into the matching field.
func (p *Props) add(arg any) {
	switch v := arg.(type) {
	case nil:
		// Ignore nil (allows conditional arguments)

	case Attr:
		p.setAttr(v)

	case []Attr:
		for _, a := range v {
			p.setAttr(a)
		}

	case EventHandler:
		p.setHandler(v)

	case []EventHandler:
		for _, h := range v {
			p.setHandler(h)
		}

	case Style:
		p.setStyle(v)

	case Props:
		for _, a := range v.Attrs {
			p.setAttr(a)
		}
		for _, h := range v.Handlers {
			p.setHandler(h)
		}
		p.setStyle(v.Style)
		p.addChildren(v.Children)

	case *Element:
		if v != nil {
			p.Children = append(p.Children, v)
		}

	case []*Element:
		p.addChildren(v)

	default:
		if el, ok := textOf(v); ok {
			p.Children = append(p.Children, el)
		}
	}
}

func (p *Props) addChildren(children []*Element) {
	for _, c := range children {
		if c != nil {
			p.Children = append(p.Children, c)
		}
	}
}
