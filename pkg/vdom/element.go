package vdom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
)

// Kind discriminates element types.
type Kind uint8

const (
	// KindRoot marks the synthetic root that owns a render's container. It
	// is the zero value and never produced by the factory.
	KindRoot Kind = iota
	KindHost
	KindText
	KindFunc
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindHost:
		return "Host"
	case KindText:
		return "Text"
	case KindFunc:
		return "Func"
	default:
		return "Unknown"
	}
}

// Type identifies what an element renders. Two elements reconcile in place
// only when their types are ==.
type Type struct {
	Kind      Kind
	Tag       string
	Component *Component
}

// String returns the tag, the component name, or "#text".
func (t Type) String() string {
	switch t.Kind {
	case KindRoot:
		return "#root"
	case KindText:
		return "#text"
	case KindFunc:
		if t.Component != nil {
			return t.Component.Name
		}
		return "func"
	default:
		return t.Tag
	}
}

// RenderFunc is the body of a function component. It may return *Element,
// []*Element, a string or number (rendered as text), or nil.
type RenderFunc func(s *hook.Scope, props Props) any

// Component is a function component declaration.
type Component struct {
	Name   string
	Render RenderFunc
}

// Func declares a function component.
func Func(name string, render RenderFunc) *Component {
	return &Component{Name: name, Render: render}
}

// El creates an element of this component.
func (c *Component) El(args ...any) *Element {
	return CreateElement(c, args...)
}

// Element is an immutable element description.
type Element struct {
	Type  Type
	Props Props
}

// String returns a compact, single-line description for logs and tests.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.Type.Kind == KindText {
		return fmt.Sprintf("%q", e.Props.Text())
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(e.Type.String())
	for _, a := range e.Props.Attrs {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Value)
	}
	for _, h := range e.Props.Handlers {
		fmt.Fprintf(&b, " on%s", h.Event)
	}
	if s := e.Props.StyleString(); s != "" {
		fmt.Fprintf(&b, " style=%q", s)
	}
	b.WriteString(">")
	for _, c := range e.Props.Children {
		b.WriteString(c.String())
	}
	b.WriteString("</")
	b.WriteString(e.Type.String())
	b.WriteString(">")
	return b.String()
}

// CreateElement creates an element of typ, which is a tag name or a
// *Component. Arguments can be: nil, Attr, []Attr, EventHandler,
// []EventHandler, Style, Props, *Element, []*Element, string, numbers or a
// fmt.Stringer. Strings, numbers and Stringers become text children. Nil
// arguments are skipped so conditional arguments can be written inline.
//
// CreateElement panics when typ is neither a string nor a *Component.
func CreateElement(typ any, args ...any) *Element {
	var t Type
	switch v := typ.(type) {
	case string:
		t = Type{Kind: KindHost, Tag: v}
	case *Component:
		if v == nil {
			panic("vdom: nil component")
		}
		t = Type{Kind: KindFunc, Component: v}
	default:
		panic(fmt.Sprintf("vdom: unsupported element type %T", typ))
	}

	el := &Element{Type: t}
	for _, arg := range args {
		el.Props.add(arg)
	}
	return el
}

func createElement(tag string, args []any) *Element {
	return CreateElement(tag, args...)
}

// Text creates a text element.
func Text(s string) *Element {
	return &Element{
		Type:  Type{Kind: KindText},
		Props: Props{Attrs: []Attr{{Key: host.NodeValue, Value: s}}},
	}
}

// Textf creates a text element from a format string.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapping element, for components that
// render several siblings. Unlike element children, nil entries are kept:
// each one holds its position empty.
func Fragment(children ...any) []*Element {
	out := make([]*Element, 0, len(children))
	for _, c := range children {
		switch v := c.(type) {
		case nil:
			out = append(out, nil)
		case *Element:
			out = append(out, v)
		case []*Element:
			out = append(out, v...)
		default:
			if el, ok := textOf(v); ok {
				out = append(out, el)
			}
		}
	}
	return out
}

// Normalize converts a component's return value into child elements. Nil
// entries in a returned slice are preserved as holes.
func Normalize(v any) ([]*Element, error) {
	switch r := v.(type) {
	case nil:
		return nil, nil
	case *Element:
		if r == nil {
			return nil, nil
		}
		return []*Element{r}, nil
	case []*Element:
		return r, nil
	case []any:
		return Fragment(r...), nil
	}
	if el, ok := textOf(v); ok {
		return []*Element{el}, nil
	}
	return nil, fmt.Errorf("vdom: component returned unsupported %T", v)
}

// textOf converts primitives and Stringers to text elements.
func textOf(v any) (*Element, bool) {
	switch s := v.(type) {
	case string:
		return Text(s), true
	case bool:
		return Text(strconv.FormatBool(s)), true
	case fmt.Stringer:
		return Text(s.String()), true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return Text(fmt.Sprint(s)), true
	}
	return nil, false
}
