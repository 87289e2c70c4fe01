package render

import "github.com/viridian-dev/viridian/pkg/vdom"

// inlineElements stay on one line in pretty output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"button": true,
	"code":   true,
	"em":     true,
	"i":      true,
	"label":  true,
	"small":  true,
	"span":   true,
	"strong": true,
}

func isVoid(tag string) bool { return vdom.IsVoidElement(tag) }

func isInline(tag string) bool { return inlineElements[tag] }
