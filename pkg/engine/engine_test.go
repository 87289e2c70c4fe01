package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/viridian-dev/viridian/pkg/fiber"
	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/host/memdom"
	"github.com/viridian-dev/viridian/pkg/idle"
	"github.com/viridian-dev/viridian/pkg/vdom"
)

type fixture struct {
	doc   *memdom.Document
	rec   *host.Recorder
	sched *idle.Manual
	eng   *Engine
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := memdom.NewDocument()
	f := &fixture{
		doc:   doc,
		rec:   host.NewRecorder(doc),
		sched: idle.NewManual(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.eng = New(f.rec, f.sched, append([]Option{WithLogger(logger)}, opts...)...)
	return f
}

// render renders el into the body and flushes.
func (f *fixture) render(t *testing.T, el *vdom.Element) *Pass {
	t.Helper()
	p := f.eng.Render(el, f.doc.Body())
	if err := f.eng.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return p
}

func TestRenderCommitsOnIdle(t *testing.T) {
	f := newFixture(t)
	p := f.eng.Render(vdom.Div("hi"), f.doc.Body())

	if p.Finished() {
		t.Fatal("pass finished before any idle time")
	}
	if f.sched.Pending() != 1 {
		t.Fatalf("Pending() = %d, want the work loop registered", f.sched.Pending())
	}

	f.sched.Step(idle.Unbounded{})
	if !p.Finished() || p.Err() != nil {
		t.Fatalf("pass not committed: finished=%v err=%v", p.Finished(), p.Err())
	}
	if got := f.doc.Body().TextContent(); got != "hi" {
		t.Errorf("TextContent() = %q, want hi", got)
	}
	if f.eng.Pending() {
		t.Error("engine still pending after commit")
	}
	if f.sched.Pending() != 1 {
		t.Errorf("work loop did not re-register")
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	f := newFixture(t)
	l := host.NewListener(func(host.Event) {})
	tree := func() *vdom.Element {
		return vdom.Ul(vdom.Class("list"), vdom.OnClick(l), vdom.Style{"color": "red"},
			vdom.Li("a"), vdom.Li("b"))
	}

	f.render(t, tree())
	f.rec.Reset()
	f.render(t, tree())

	if ops := f.rec.Ops(); len(ops) != 0 {
		t.Errorf("second identical render issued host ops:\n%s", f.rec)
	}
}

func TestPositionalSwapRecreates(t *testing.T) {
	f := newFixture(t)
	f.render(t, vdom.Div(vdom.Div(), vdom.Span()))
	outer := f.doc.Body().Children()[0]

	prev := f.eng.Current()

	f.rec.Reset()
	f.render(t, vdom.Div(vdom.Span(), vdom.Div()))

	for _, id := range prev.Children(prev.Get(fiber.RootID).Child) {
		if got := prev.Get(id).Effect; got != fiber.EffectDelete {
			t.Errorf("replaced fiber %d effect = %s, want delete", id, got)
		}
	}

	if n := f.rec.Count(host.OpRemoveChild); n != 2 {
		t.Errorf("removeChild count = %d, want 2", n)
	}
	if n := f.rec.Count(host.OpCreateElement); n != 2 {
		t.Errorf("createElement count = %d, want 2", n)
	}
	if n := f.rec.Count(host.OpAppendChild); n != 2 {
		t.Errorf("appendChild count = %d, want 2", n)
	}
	if f.doc.Body().Children()[0] != outer {
		t.Error("outer element was recreated")
	}
	kids := outer.Children()
	if len(kids) != 2 || kids[0].Tag() != "span" || kids[1].Tag() != "div" {
		t.Errorf("children = %v", kids)
	}
}

func TestTextUpdateReusesHostNodes(t *testing.T) {
	f := newFixture(t)

	app := vdom.Func("App", func(s *hook.Scope, _ vdom.Props) any {
		text, setText := hook.State(s, "A")
		click := hook.Memo(s, func() *host.Listener {
			return host.NewListener(func(host.Event) {
				setText(func(string) string { return "B" })
			})
		}, []any{})
		return vdom.Button(vdom.OnClick(click), text)
	})
	f.render(t, app.El())

	button := f.doc.Body().Children()[0]
	text := button.Children()[0]
	if text.Text() != "A" {
		t.Fatalf("text = %q, want A", text.Text())
	}

	f.rec.Reset()
	if n := f.doc.Dispatch(button, host.Event{Type: "click"}); n != 1 {
		t.Fatalf("Dispatch invoked %d listeners, want 1", n)
	}
	if !f.eng.Pending() {
		t.Fatal("setter did not schedule a pass")
	}
	if err := f.eng.Flush(); err != nil {
		t.Fatal(err)
	}

	if f.doc.Body().Children()[0] != button || button.Children()[0] != text {
		t.Error("host nodes were replaced")
	}
	if text.Text() != "B" {
		t.Errorf("text = %q, want B", text.Text())
	}
	if got, want := f.rec.String(), `setAttribute nodeValue="B"`; got != want {
		t.Errorf("host ops:\n%s\nwant:\n%s", got, want)
	}
}

func TestWorkLoopYieldsBetweenUnits(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, WithRegisterer(reg))

	// root, div, span, p: four units.
	p := f.eng.Render(vdom.Div(vdom.Span(), vdom.P()), f.doc.Body())

	f.sched.Step(idle.NewBudget(0))
	if p.Finished() || len(f.doc.Body().Children()) != 0 {
		t.Fatal("committed after one unit")
	}
	f.sched.Step(idle.NewBudget(1))
	if p.Finished() {
		t.Fatal("committed after three units")
	}
	f.sched.Step(idle.NewBudget(10))
	if !p.Finished() || p.Err() != nil {
		t.Fatalf("pass not committed: %v", p.Err())
	}

	if got := testutil.ToFloat64(f.eng.metrics.units); got != 4 {
		t.Errorf("units_total = %v, want 4", got)
	}
	if got := testutil.ToFloat64(f.eng.metrics.yields); got != 2 {
		t.Errorf("yields_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(f.eng.metrics.commits); got != 1 {
		t.Errorf("commits_total = %v, want 1", got)
	}
}

func TestRenderSupersedesPendingPass(t *testing.T) {
	f := newFixture(t)
	first := f.eng.Render(vdom.Div("first"), f.doc.Body())
	f.sched.Step(idle.NewBudget(0))

	second := f.eng.Render(vdom.Div("second"), f.doc.Body())
	if !errors.Is(first.Err(), ErrSuperseded) {
		t.Errorf("first.Err() = %v, want ErrSuperseded", first.Err())
	}
	if err := f.eng.Flush(); err != nil {
		t.Fatal(err)
	}
	if second.Err() != nil {
		t.Errorf("second.Err() = %v", second.Err())
	}
	if got := f.doc.Body().TextContent(); got != "second" {
		t.Errorf("TextContent() = %q, want second", got)
	}
}

func TestSupersededPassClearsDeleteTags(t *testing.T) {
	f := newFixture(t)
	f.render(t, vdom.Div(vdom.Span("a")))
	cur := f.eng.Current()
	span := cur.Get(cur.Get(fiber.RootID).Child).Child

	f.eng.Render(vdom.Div(vdom.P("b")), f.doc.Body())
	for i := 0; i < 10 && cur.Get(span).Effect != fiber.EffectDelete; i++ {
		f.sched.Step(idle.NewBudget(0))
	}
	if got := cur.Get(span).Effect; got != fiber.EffectDelete {
		t.Fatalf("span effect = %s, want delete", got)
	}

	f.eng.Render(vdom.Div(vdom.Span("c")), f.doc.Body())
	if got := cur.Get(span).Effect; got == fiber.EffectDelete {
		t.Errorf("span still tagged delete after its pass was superseded")
	}
	if err := f.eng.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := f.doc.Body().TextContent(); got != "c" {
		t.Errorf("TextContent() = %q, want c", got)
	}
}

func TestStateUpdateBeforeFirstCommit(t *testing.T) {
	f := newFixture(t)
	passes := 0
	f.eng.OnCommit(func(CommitStats) { passes++ })

	app := vdom.Func("Eager", func(s *hook.Scope, _ vdom.Props) any {
		n, setN := hook.State(s, 0)
		once := hook.Ref(s, false)
		if !once.Current {
			once.Current = true
			setN(func(n int) int { return n + 1 })
		}
		return n
	})
	f.render(t, app.El())

	if got := f.doc.Body().TextContent(); got != "1" {
		t.Errorf("TextContent() = %q, want 1", got)
	}
	if passes != 2 {
		t.Errorf("commits = %d, want 2", passes)
	}
}

// failingHost fails AppendChild once armed.
type failingHost struct {
	host.Host
	fail bool
}

func (h *failingHost) AppendChild(parent, child host.Node) error {
	if h.fail {
		return errors.New("append refused")
	}
	return h.Host.AppendChild(parent, child)
}

func TestCommitFailureKeepsCurrentTree(t *testing.T) {
	doc := memdom.NewDocument()
	fh := &failingHost{Host: doc}
	sched := idle.NewManual()
	eng := New(fh, sched, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	eng.Render(vdom.Div(vdom.P("a")), doc.Body())
	if err := eng.Flush(); err != nil {
		t.Fatal(err)
	}
	before := eng.Current()

	fh.fail = true
	eng.Render(vdom.Div(vdom.P("a"), vdom.P("b")), doc.Body())
	err := eng.Flush()
	if !errors.Is(err, ErrHostOperation) {
		t.Fatalf("Flush() = %v, want ErrHostOperation", err)
	}
	if !strings.Contains(err.Error(), "appendChild") {
		t.Errorf("error %q does not name the operation", err)
	}
	if eng.Current() != before {
		t.Error("current tree replaced after failed commit")
	}
	if eng.Pending() {
		t.Error("failed pass left work pending")
	}

	// The next pass reconciles against the last good tree.
	fh.fail = false
	eng.Render(vdom.Div(vdom.P("a"), vdom.P("b")), doc.Body())
	if err := eng.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := doc.Body().TextContent(); got != "ab" {
		t.Errorf("TextContent() = %q, want ab", got)
	}
}

func TestComponentPanicLeavesHostUntouched(t *testing.T) {
	f := newFixture(t)
	boom := vdom.Func("Boom", func(s *hook.Scope, props vdom.Props) any {
		if _, ok := props.Attr("explode"); ok {
			panic("kaboom")
		}
		return vdom.Span("ok")
	})

	f.render(t, vdom.Div(vdom.ID("root"), boom.El()))
	before := f.doc.Body().Snapshot()
	current := f.eng.Current()

	f.eng.Render(vdom.Div(vdom.ID("changed"), boom.El(vdom.AttrOf("explode", "1"))), f.doc.Body())
	err := f.eng.Flush()
	if !errors.Is(err, ErrComponentPanic) {
		t.Fatalf("Flush() = %v, want ErrComponentPanic", err)
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("error %q lost the panic value", err)
	}
	if diff := pretty.Diff(before, f.doc.Body().Snapshot()); len(diff) > 0 {
		t.Errorf("host changed:\n%s", strings.Join(diff, "\n"))
	}
	if f.eng.Current() != current {
		t.Error("current tree replaced after aborted pass")
	}
}

func TestHookOrderViolation(t *testing.T) {
	shifty := vdom.Func("Shifty", func(s *hook.Scope, props vdom.Props) any {
		if _, ok := props.Attr("ref"); ok {
			hook.Ref(s, 0)
		} else {
			hook.State(s, 0)
		}
		return nil
	})

	t.Run("strict", func(t *testing.T) {
		f := newFixture(t)
		f.render(t, shifty.El())
		f.eng.Render(shifty.El(vdom.AttrOf("ref", "")), f.doc.Body())
		if err := f.eng.Flush(); !errors.Is(err, hook.ErrHookOrder) {
			t.Errorf("Flush() = %v, want ErrHookOrder", err)
		}
	})

	t.Run("lenient", func(t *testing.T) {
		f := newFixture(t, WithLenientHooks(true))
		f.render(t, shifty.El())
		f.render(t, shifty.El(vdom.AttrOf("ref", "")))
	})
}

func TestDeleteFunctionComponentRemovesAllItsNodes(t *testing.T) {
	f := newFixture(t)
	pair := vdom.Func("Pair", func(*hook.Scope, vdom.Props) any {
		return vdom.Fragment(vdom.Li("a"), vdom.Li("b"))
	})

	f.render(t, vdom.Ul(pair.El()))
	ul := f.doc.Body().Children()[0]
	if len(ul.Children()) != 2 {
		t.Fatalf("ul children = %d, want 2", len(ul.Children()))
	}

	f.rec.Reset()
	f.render(t, vdom.Ul(vdom.Li("c")))
	if n := f.rec.Count(host.OpRemoveChild); n != 2 {
		t.Errorf("removeChild count = %d, want 2\n%s", n, f.rec)
	}
	if got := ul.TextContent(); got != "c" {
		t.Errorf("TextContent() = %q, want c", got)
	}
}

func TestHoleConsumesPosition(t *testing.T) {
	f := newFixture(t)
	list := vdom.Func("List", func(s *hook.Scope, props vdom.Props) any {
		var first *vdom.Element
		if _, ok := props.Attr("first"); ok {
			first = vdom.Li("a")
		}
		return []*vdom.Element{first, vdom.Li("b")}
	})

	f.render(t, vdom.Ul(list.El(vdom.AttrOf("first", ""))))
	ul := f.doc.Body().Children()[0]
	second := ul.Children()[1]

	f.rec.Reset()
	f.render(t, vdom.Ul(list.El()))
	kids := ul.Children()
	if len(kids) != 1 || kids[0] != second {
		t.Errorf("children = %v, want only the original second item", kids)
	}
	if n := f.rec.Count(host.OpCreateElement); n != 0 {
		t.Errorf("createElement count = %d, want 0", n)
	}
}

func TestMemoizedListenerKeepsRegistration(t *testing.T) {
	for _, tc := range []struct {
		name    string
		memo    bool
		churned int
	}{
		{"memoized", true, 0},
		{"per render", false, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			app := vdom.Func("Clicker", func(s *hook.Scope, _ vdom.Props) any {
				n, setN := hook.State(s, 0)
				click := func() { setN(func(n int) int { return n + 1 }) }
				var handler any = click
				if tc.memo {
					handler = hook.Memo(s, func() *host.Listener { return vdom.Listener(click) }, []any{})
				}
				return vdom.Button(vdom.OnClick(handler), n)
			})
			f.render(t, app.El())

			button := f.doc.Body().Children()[0]
			f.rec.Reset()
			f.doc.Dispatch(button, host.Event{Type: "click"})
			if err := f.eng.Flush(); err != nil {
				t.Fatal(err)
			}

			if got := button.TextContent(); got != "1" {
				t.Errorf("TextContent() = %q, want 1", got)
			}
			if got := f.rec.Count(host.OpRemoveListener); got != tc.churned {
				t.Errorf("removeEventListener count = %d, want %d", got, tc.churned)
			}
			if got := f.rec.Count(host.OpAddListener); got != tc.churned {
				t.Errorf("addEventListener count = %d, want %d", got, tc.churned)
			}
			if got := button.ListenerCount("click"); got != 1 {
				t.Errorf("click listeners = %d, want 1", got)
			}
		})
	}
}

func TestPropDiffOrder(t *testing.T) {
	f := newFixture(t)
	l1 := host.NewListener(func(host.Event) {})
	l2 := host.NewListener(func(host.Event) {})

	f.render(t, vdom.Div(vdom.Class("a"), vdom.ID("x"), vdom.Style{"color": "red"}, vdom.OnClick(l1)))
	f.rec.Reset()
	f.render(t, vdom.Div(vdom.Class("b"), vdom.OnClick(l2)))

	want := strings.Join([]string{
		"removeEventListener click",
		"removeAttribute id",
		"removeAttribute style",
		`setAttribute class="b"`,
		"addEventListener click",
	}, "\n")
	if got := f.rec.String(); got != want {
		t.Errorf("host ops:\n%s\nwant:\n%s", got, want)
	}
}

func TestOnCommitStats(t *testing.T) {
	f := newFixture(t)
	var got []CommitStats
	f.eng.OnCommit(func(s CommitStats) { got = append(got, s) })

	f.render(t, vdom.Div(vdom.P("x")))
	f.render(t, vdom.Div(vdom.Span()))

	if len(got) != 2 {
		t.Fatalf("observed %d commits, want 2", len(got))
	}
	first, second := got[0], got[1]
	if first.Placed != 3 || first.Units != 4 || first.Trigger != TriggerRender {
		t.Errorf("first commit = %# v", pretty.Formatter(first))
	}
	if second.Deleted != 1 || second.Placed != 1 || second.Updated != 1 {
		t.Errorf("second commit = %# v", pretty.Formatter(second))
	}
}

func TestPassWait(t *testing.T) {
	f := newFixture(t)
	p := f.render(t, vdom.Div())
	if err := p.Wait(context.Background()); err != nil {
		t.Errorf("Wait() = %v", err)
	}
	if p.ID() != 1 {
		t.Errorf("ID() = %d, want 1", p.ID())
	}
}
