// Package demo holds the sample applications rendered by `viridian render`
// and `viridian serve`.
package demo

import (
	"sort"
	"strconv"
	"strings"

	"github.com/viridian-dev/viridian/internal/errors"
	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
	. "github.com/viridian-dev/viridian/pkg/vdom"
)

// App is a named sample root.
type App struct {
	Name        string
	Description string
	Root        func() *Element
}

var apps = map[string]App{
	"counter": {
		Name:        "counter",
		Description: "a button that counts clicks",
		Root:        func() *Element { return Counter.El(AttrOf("start", "0")) },
	},
	"todo": {
		Name:        "todo",
		Description: "a todo list with add and remove",
		Root:        func() *Element { return Todo.El() },
	},
}

// Lookup returns the sample app called name.
func Lookup(name string) (App, error) {
	app, ok := apps[name]
	if !ok {
		return App{}, errors.New("E250").
			WithDetail("No demo named " + strconv.Quote(name)).
			WithSuggestion("Available: " + strings.Join(Names(), ", "))
	}
	return app, nil
}

// Names returns the sample names in order.
func Names() []string {
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counter renders a count and two buttons. The optional "start" attribute
// seeds the count.
var Counter = Func("Counter", func(s *hook.Scope, props Props) any {
	v, _ := props.Attr("start")
	start, _ := strconv.Atoi(v)
	count, setCount := hook.State(s, start)

	inc := hook.Memo(s, func() *host.Listener {
		return Listener(func() { setCount(func(n int) int { return n + 1 }) })
	}, []any{})
	dec := hook.Memo(s, func() *host.Listener {
		return Listener(func() { setCount(func(n int) int { return n - 1 }) })
	}, []any{})

	return Div(Class("counter"),
		Button(ID("dec"), OnClick(dec), "-"),
		Span(ID("count"), count),
		Button(ID("inc"), OnClick(inc), "+"),
	)
})

type todoItem struct {
	id   int
	text string
}

// Todo renders an input, an add button and the list of items. Each item has
// a remove button.
var Todo = Func("Todo", func(s *hook.Scope, _ Props) any {
	items, setItems := hook.State(s, []todoItem(nil))
	draft, setDraft := hook.State(s, "")
	nextID := hook.Ref(s, 1)

	onInput := hook.Memo(s, func() *host.Listener {
		return Listener(func(ev host.Event) {
			setDraft(func(string) string { return ev.Value })
		})
	}, []any{})

	onAdd := hook.Memo(s, func() *host.Listener {
		return Listener(func() {
			text := strings.TrimSpace(draft)
			if text == "" {
				return
			}
			id := nextID.Current
			nextID.Current++
			setItems(func(cur []todoItem) []todoItem {
				return append(append([]todoItem(nil), cur...), todoItem{id: id, text: text})
			})
			setDraft(func(string) string { return "" })
		})
	}, []any{draft})

	remove := func(id int) func() {
		return func() {
			setItems(func(cur []todoItem) []todoItem {
				out := make([]todoItem, 0, len(cur))
				for _, it := range cur {
					if it.id != id {
						out = append(out, it)
					}
				}
				return out
			})
		}
	}

	return Div(Class("todo"),
		Input(ID("draft"), Value(draft), Placeholder("What needs doing?"), OnInput(onInput)),
		Button(ID("add"), OnClick(onAdd), "Add"),
		Ul(Range(items, func(it todoItem, _ int) *Element {
			return Li(Span(it.text), Button(Class("remove"), OnClick(remove(it.id)), "x"))
		})),
		If(len(items) == 0, P(Class("empty"), "Nothing to do")),
	)
})
