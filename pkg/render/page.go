package render

import (
	"fmt"
	"io"

	"github.com/viridian-dev/viridian/pkg/host/memdom"
)

// RootID is the id of the element wrapping the rendered body content.
const RootID = "viridian-root"

// PageData contains everything needed to render a complete HTML page.
type PageData struct {
	// Body is the host tree's body; only its children are rendered.
	Body *memdom.Node

	// Title is the page title.
	Title string

	// Lang is the html lang attribute. Defaults to "en".
	Lang string

	// StyleSheets are linked in the head.
	StyleSheets []string

	// InlineScript is appended to the body inside a script element.
	InlineScript string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeText(page.Title)); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "</head>\n<body>\n<div id=\"%s\">", RootID); err != nil {
		return err
	}
	if page.Body != nil {
		if _, err := io.WriteString(w, r.Children(page.Body)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}
	if page.InlineScript != "" {
		if _, err := fmt.Fprintf(w, "<script>%s</script>\n", page.InlineScript); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
