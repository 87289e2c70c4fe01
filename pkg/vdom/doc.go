// Package vdom builds the element descriptions that components return and
// the engine reconciles.
//
// Elements are immutable values. Every element has a comparable Type and a
// Props value whose attributes, handlers, style and children are sorted into
// separate fields when the element is built:
//
//	vdom.Div(
//	    vdom.Class("card"),
//	    vdom.Style{"color": "red"},
//	    vdom.OnClick(func(host.Event) { ... }),
//	    vdom.H1("Title"),
//	    "body text",
//	)
//
// Function components are declared once with Func and compared by pointer,
// so two declarations of the same render function are different types.
package vdom
