package vdom

import (
	"fmt"

	"github.com/viridian-dev/viridian/pkg/host"
)

// event creates an EventHandler. handler may be a *host.Listener, a
// func(host.Event) or a func(). Function values are wrapped in a new
// listener on every call, so a handler recreated on each render is
// re-registered on each commit; share a *host.Listener (or memoize one with
// hook.Memo) to keep the registration stable.
func event(name string, handler any) EventHandler {
	return EventHandler{Event: name, Listener: Listener(handler)}
}

// Listener converts a handler value into a *host.Listener. It returns nil
// for a nil handler and panics on unsupported types.
func Listener(handler any) *host.Listener {
	switch h := handler.(type) {
	case nil:
		return nil
	case *host.Listener:
		return h
	case func(host.Event):
		if h == nil {
			return nil
		}
		return host.NewListener(h)
	case func():
		if h == nil {
			return nil
		}
		return host.NewListener(func(host.Event) { h() })
	default:
		panic(fmt.Sprintf("vdom: unsupported event handler %T", handler))
	}
}

// On binds handler to an arbitrary event name.
func On(name string, handler any) EventHandler { return event(name, handler) }

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler any) EventHandler { return event("mousedown", handler) }

// OnMouseUp handles mouseup events.
func OnMouseUp(handler any) EventHandler { return event("mouseup", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler any) EventHandler { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler any) EventHandler { return event("mouseleave", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnKeyUp handles keyup events.
func OnKeyUp(handler any) EventHandler { return event("keyup", handler) }

// Form events

// OnInput handles input events.
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }
