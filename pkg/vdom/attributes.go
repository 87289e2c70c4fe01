package vdom

import (
	"sort"
	"strconv"
	"strings"
)

// attr creates an Attr, rendering value as a host attribute string. true
// renders as a present, empty attribute; false as no attribute at all.
func attr(key string, value any) Attr {
	switch v := value.(type) {
	case string:
		return Attr{Key: key, Value: v}
	case bool:
		if !v {
			return Attr{}
		}
		return Attr{Key: key}
	case int:
		return Attr{Key: key, Value: strconv.Itoa(v)}
	case float64:
		return Attr{Key: key, Value: strconv.FormatFloat(v, 'f', -1, 64)}
	default:
		return Attr{}
	}
}

// AttrOf sets an arbitrary attribute.
func AttrOf(key, value string) Attr { return Attr{Key: key, Value: value} }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute from a literal string. Prefer Style,
// which is diffed per element.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets aria-hidden="true" when hidden.
func AriaHidden(hidden bool) Attr {
	if !hidden {
		return Attr{}
	}
	return attr("aria-hidden", "true")
}

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// TypeAttr sets the type attribute.
func TypeAttr(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute when on is true.
func Disabled(on bool) Attr { return attr("disabled", on) }

// Checked sets the checked attribute when on is true.
func Checked(on bool) Attr { return attr("checked", on) }

// Required sets the required attribute.
func Required() Attr { return attr("required", true) }

// Autofocus sets the autofocus attribute.
func Autofocus() Attr { return attr("autofocus", true) }

// MaxLength sets the maxlength attribute.
func MaxLength(n int) Attr { return attr("maxlength", n) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// Table attributes

// Colspan sets the colspan attribute.
func Colspan(n int) Attr { return attr("colspan", n) }

// Conditional attributes

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{}
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges class values. Accepts string, []string and
// map[string]bool; map entries are added in key order.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			keys := make([]string, 0, len(v))
			for class, include := range v {
				if include && class != "" {
					keys = append(keys, class)
				}
			}
			sort.Strings(keys)
			result = append(result, keys...)
		}
	}
	return attr("class", strings.Join(result, " "))
}
