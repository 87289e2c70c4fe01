package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/host/memdom"
)

// build creates body > div#app(class="a&b") > [span > "x<y", input(disabled)].
func build(t *testing.T) (*memdom.Document, *memdom.Node) {
	t.Helper()
	doc := memdom.NewDocument()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	div, err := doc.CreateElement("div")
	must(err)
	must(doc.SetAttribute(div, "id", "app"))
	must(doc.SetAttribute(div, "class", "a&b"))
	span, err := doc.CreateElement("span")
	must(err)
	text, err := doc.CreateTextNode("x<y")
	must(err)
	input, err := doc.CreateElement("input")
	must(err)
	must(doc.SetAttribute(input, "disabled", ""))

	must(doc.AppendChild(doc.Body(), div))
	must(doc.AppendChild(div, span))
	must(doc.AppendChild(span, text))
	must(doc.AppendChild(div, input))
	return doc, div.(*memdom.Node)
}

func TestRenderToString(t *testing.T) {
	_, div := build(t)
	got := HTML(div)
	want := `<div class="a&amp;b" id="app"><span>x&lt;y</span><input disabled></div>`
	if got != want {
		t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestInteractiveElementsCarryIDs(t *testing.T) {
	doc, div := build(t)
	l := host.NewListener(func(host.Event) {})
	if err := doc.AddEventListener(div, "click", l); err != nil {
		t.Fatal(err)
	}

	got := HTML(div)
	if !strings.Contains(got, `data-vid="`) || !strings.Contains(got, `data-events="click"`) {
		t.Errorf("HTML() = %s, want data-vid and data-events", got)
	}

	static := NewRenderer(RendererConfig{OmitIDs: true}).RenderToString(div)
	if strings.Contains(static, "data-vid") {
		t.Errorf("OmitIDs output still has ids: %s", static)
	}
}

func TestPrettyIndentsBlocks(t *testing.T) {
	doc := memdom.NewDocument()
	ul, _ := doc.CreateElement("ul")
	li, _ := doc.CreateElement("li")
	text, _ := doc.CreateTextNode("one")
	_ = doc.AppendChild(doc.Body(), ul)
	_ = doc.AppendChild(ul, li)
	_ = doc.AppendChild(li, text)

	got := NewRenderer(RendererConfig{Pretty: true}).RenderToString(ul.(*memdom.Node))
	want := "<ul>\n  <li>one</li>\n</ul>"
	if got != want {
		t.Errorf("pretty = %q, want %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	doc, _ := build(t)
	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Body:         doc.Body(),
		Title:        "Demo <1>",
		InlineScript: "console.log(1)",
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Demo &lt;1&gt;</title>",
		`<div id="viridian-root"><div class="a&amp;b" id="app">`,
		"<script>console.log(1)</script>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}
