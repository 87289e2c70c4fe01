// Package viridian is the public API of the viridian renderer.
//
// A component is a render function that receives a hook scope and its props
// and returns elements. The engine renders the returned tree into a host
// tree, incrementally and in idle time, and keeps it in sync as state
// changes:
//
//	var Counter = viridian.Func("Counter", func(s *viridian.Scope, _ viridian.Props) any {
//	    count, setCount := viridian.State(s, 0)
//	    inc := viridian.Memo(s, func() *host.Listener {
//	        return viridian.Listener(func() { setCount(func(n int) int { return n + 1 }) })
//	    }, []any{})
//	    return Button(OnClick(inc), count)
//	})
//
// Event helpers accept plain funcs too, but each call wraps them in a new
// listener that the next commit re-registers. Memoize the *host.Listener to
// keep one registration across renders.
//
//	app, err := viridian.NewApp(config.New(), os.Stderr)
//	err = app.Render(Counter.El())
//	fmt.Println(app.HTML())
package viridian

import (
	"github.com/viridian-dev/viridian/pkg/engine"
	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/idle"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

// =============================================================================
// Elements (re-export from pkg/vdom)
// =============================================================================

type (
	// Element is an immutable description of a host or function node.
	Element = vdom.Element

	// Props are an element's attributes, handlers, style and children.
	Props = vdom.Props

	// Component is a named render function. Identity is the pointer.
	Component = vdom.Component

	// RenderFunc renders a component.
	RenderFunc = vdom.RenderFunc
)

// Func declares a function component.
func Func(name string, render RenderFunc) *Component { return vdom.Func(name, render) }

// Listener wraps a func(), a func(host.Event) or an existing *host.Listener
// for use with the event helpers.
func Listener(handler any) *host.Listener { return vdom.Listener(handler) }

// CreateElement builds an element from a tag or *Component and arguments.
func CreateElement(typ any, args ...any) *Element { return vdom.CreateElement(typ, args...) }

// Text creates a text element.
func Text(s string) *Element { return vdom.Text(s) }

// Fragment returns children to be placed directly in the parent.
func Fragment(children ...any) []*Element { return vdom.Fragment(children...) }

// =============================================================================
// Hooks (re-export from pkg/hook)
// =============================================================================

// Scope is the hook store of one component evaluation.
type Scope = hook.Scope

// State returns the current value and a setter that queues an update.
func State[T any](s *Scope, initial T) (T, func(func(T) T)) { return hook.State(s, initial) }

// Effect runs fn when deps changed since the previous render.
func Effect(s *Scope, fn func(), deps []any) { hook.Effect(s, fn, deps) }

// Memo recomputes only when deps changed.
func Memo[T any](s *Scope, compute func() T, deps []any) T { return hook.Memo(s, compute, deps) }

// Callback keeps fn's identity while deps are unchanged.
func Callback[F any](s *Scope, fn F, deps []any) F { return hook.Callback(s, fn, deps) }

// Ref returns a box that persists across renders.
func Ref[T any](s *Scope, initial T) *hook.Box[T] { return hook.Ref(s, initial) }

// =============================================================================
// Mounting
// =============================================================================

// Mount renders a single element of the given tag around text into
// container and commits it before returning.
func Mount(h host.Host, container host.Node, tag, text string, opts ...engine.Option) error {
	eng := engine.New(h, idle.NewManual(), opts...)
	eng.Render(vdom.CreateElement(tag, text), container)
	return eng.Flush()
}
