package vdom

import (
	"testing"

	"github.com/viridian-dev/viridian/pkg/hook"
	"github.com/viridian-dev/viridian/pkg/host"
)

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		el := Div()
		if el.Type.Kind != KindHost {
			t.Errorf("Kind = %v, want Host", el.Type.Kind)
		}
		if el.Type.Tag != "div" {
			t.Errorf("Tag = %v, want div", el.Type.Tag)
		}
	})

	t.Run("attributes keep insertion order", func(t *testing.T) {
		el := Div(Class("card"), ID("main"), Class("wide"))
		want := []Attr{{"class", "wide"}, {"id", "main"}}
		if len(el.Props.Attrs) != len(want) {
			t.Fatalf("Attrs = %v, want %v", el.Props.Attrs, want)
		}
		for i := range want {
			if el.Props.Attrs[i] != want[i] {
				t.Errorf("Attrs[%d] = %v, want %v", i, el.Props.Attrs[i], want[i])
			}
		}
	})

	t.Run("boolean attributes", func(t *testing.T) {
		el := Input(Disabled(true), Checked(false))
		if v, ok := el.Props.Attr("disabled"); !ok || v != "" {
			t.Errorf("disabled = (%q, %v), want present and empty", v, ok)
		}
		if _, ok := el.Props.Attr("checked"); ok {
			t.Error("checked(false) should not set an attribute")
		}
	})

	t.Run("string and number children become text", func(t *testing.T) {
		el := Div("Hello", 42)
		if len(el.Props.Children) != 2 {
			t.Fatalf("Children len = %d, want 2", len(el.Props.Children))
		}
		if el.Props.Children[0].Type.Kind != KindText {
			t.Errorf("child kind = %v, want Text", el.Props.Children[0].Type.Kind)
		}
		if got := el.Props.Children[1].Props.Text(); got != "42" {
			t.Errorf("text = %q, want 42", got)
		}
	})

	t.Run("bool children become text", func(t *testing.T) {
		el := Div(true, 3, false)
		if len(el.Props.Children) != 3 {
			t.Fatalf("Children len = %d, want 3", len(el.Props.Children))
		}
		for i, want := range []string{"true", "3", "false"} {
			c := el.Props.Children[i]
			if c.Type.Kind != KindText || c.Props.Text() != want {
				t.Errorf("child %d = %v %q, want text %q", i, c.Type.Kind, c.Props.Text(), want)
			}
		}
	})

	t.Run("nil arguments are skipped", func(t *testing.T) {
		var missing *Element
		el := Div(nil, missing, If(false, Span()), P())
		if len(el.Props.Children) != 1 {
			t.Errorf("Children len = %d, want 1", len(el.Props.Children))
		}
	})

	t.Run("props merge", func(t *testing.T) {
		base := Props{Attrs: []Attr{{"id", "x"}}, Style: Style{"color": "red"}}
		el := Div(base, Style{"margin": "0"})
		if v, _ := el.Props.Attr("id"); v != "x" {
			t.Errorf("id = %q, want x", v)
		}
		if got := el.Props.StyleString(); got != "color: red; margin: 0" {
			t.Errorf("style = %q", got)
		}
	})
}

func TestTextElement(t *testing.T) {
	el := Text("hi")
	if el.Type != (Type{Kind: KindText}) {
		t.Errorf("Type = %+v", el.Type)
	}
	if v, ok := el.Props.Attr(host.NodeValue); !ok || v != "hi" {
		t.Errorf("nodeValue = (%q, %v), want hi", v, ok)
	}
}

func TestComponentIdentity(t *testing.T) {
	render := func(*hook.Scope, Props) any { return nil }
	a := Func("A", render)
	b := Func("A", render)

	if a.El().Type != a.El().Type {
		t.Error("elements of one component should share a type")
	}
	if a.El().Type == b.El().Type {
		t.Error("separately declared components should differ")
	}
	if Div().Type != Div().Type {
		t.Error("host types with the same tag should be equal")
	}
	if Div().Type == Span().Type {
		t.Error("host types with different tags should differ")
	}
}

func TestCreateElementPanicsOnUnknownType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	CreateElement(42)
}

func TestEventHandlers(t *testing.T) {
	l := host.NewListener(func(host.Event) {})
	el := Button(OnClick(l), OnInput(func() {}), OnClick(nil))

	if el.Props.Handler("click") != l {
		t.Error("click listener should be the shared listener")
	}
	if el.Props.Handler("input") == nil {
		t.Error("input listener missing")
	}
	if len(el.Props.Handlers) != 2 {
		t.Errorf("Handlers len = %d, want 2", len(el.Props.Handlers))
	}
}

func TestFragmentKeepsHoles(t *testing.T) {
	f := Fragment(Div(), nil, "x")
	if len(f) != 3 {
		t.Fatalf("len = %d, want 3", len(f))
	}
	if f[1] != nil {
		t.Error("hole should stay nil")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"nil element", (*Element)(nil), 0},
		{"element", Div(), 1},
		{"fragment", Fragment(Div(), nil), 2},
		{"string", "text", 1},
		{"float", 1.5, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tc.want {
				t.Errorf("len = %d, want %d", len(got), tc.want)
			}
		})
	}

	if _, err := Normalize(struct{}{}); err == nil {
		t.Error("expected error for unsupported value")
	}
}

func TestElementString(t *testing.T) {
	el := Ul(Class("list"), Li("a"), Li("b"))
	want := `<ul class="list"><li>"a"</li><li>"b"</li></ul>`
	if got := el.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
