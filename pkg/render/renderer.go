package render

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/viridian-dev/viridian/pkg/host/memdom"
)

// IDAttr is the attribute carrying a node's id on interactive elements.
const IDAttr = "data-vid"

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty indents block elements one per line. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// OmitIDs suppresses data-vid attributes, for static output.
	OmitIDs bool
}

// Renderer writes memdom trees as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders n and its descendants.
func (r *Renderer) RenderToString(n *memdom.Node) string {
	var buf bytes.Buffer
	// bytes.Buffer writes cannot fail.
	_ = r.RenderToWriter(&buf, n)
	return buf.String()
}

// RenderToWriter streams n and its descendants to w.
func (r *Renderer) RenderToWriter(w io.Writer, n *memdom.Node) error {
	bw := bufio.NewWriter(w)
	r.node(bw, n, 0)
	return bw.Flush()
}

// Children renders only the children of n, which is how the server ships
// the body's content.
func (r *Renderer) Children(n *memdom.Node) string {
	var b bytes.Buffer
	bw := bufio.NewWriter(&b)
	for _, c := range n.Children() {
		r.node(bw, c, 0)
	}
	_ = bw.Flush()
	return b.String()
}

func (r *Renderer) node(w *bufio.Writer, n *memdom.Node, depth int) {
	if n == nil {
		return
	}
	if n.Type() == memdom.TextNode {
		w.WriteString(escapeText(n.Text()))
		return
	}

	tag := n.Tag()
	block := r.config.Pretty && !isInline(tag)
	if block && depth > 0 {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(r.config.Indent, depth))
	}

	w.WriteByte('<')
	w.WriteString(tag)
	for _, kv := range n.Attrs() {
		w.WriteByte(' ')
		w.WriteString(kv[0])
		if kv[1] != "" {
			w.WriteString(`="`)
			w.WriteString(escapeAttr(kv[1]))
			w.WriteByte('"')
		}
	}
	if events := n.Events(); len(events) > 0 && !r.config.OmitIDs {
		w.WriteString(` ` + IDAttr + `="`)
		w.WriteString(strconv.Itoa(n.ID()))
		w.WriteString(`" data-events="`)
		w.WriteString(escapeAttr(strings.Join(events, " ")))
		w.WriteByte('"')
	}
	w.WriteByte('>')

	if isVoid(tag) {
		return
	}

	children := n.Children()
	hasBlock := false
	for _, c := range children {
		r.node(w, c, depth+1)
		if c.Type() == memdom.ElementNode && !isInline(c.Tag()) {
			hasBlock = true
		}
	}
	if block && hasBlock {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(r.config.Indent, depth))
	}
	w.WriteString("</")
	w.WriteString(tag)
	w.WriteByte('>')
}

// HTML renders n with the default configuration.
func HTML(n *memdom.Node) string {
	return NewRenderer(RendererConfig{}).RenderToString(n)
}
