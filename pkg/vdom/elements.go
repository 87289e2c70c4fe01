package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Document structure elements

func Html(args ...any) *Element  { return createElement("html", args) }
func Head(args ...any) *Element  { return createElement("head", args) }
func Body(args ...any) *Element  { return createElement("body", args) }
func Title(args ...any) *Element { return createElement("title", args) }
func Meta(args ...any) *Element  { return createElement("meta", args) }
func Link(args ...any) *Element  { return createElement("link", args) }
func Base(args ...any) *Element  { return createElement("base", args) }

// Content sectioning elements

func Header(args ...any) *Element  { return createElement("header", args) }
func Footer(args ...any) *Element  { return createElement("footer", args) }
func Main(args ...any) *Element    { return createElement("main", args) }
func Nav(args ...any) *Element     { return createElement("nav", args) }
func Section(args ...any) *Element { return createElement("section", args) }
func Article(args ...any) *Element { return createElement("article", args) }
func Aside(args ...any) *Element   { return createElement("aside", args) }
func Address(args ...any) *Element { return createElement("address", args) }
func H1(args ...any) *Element      { return createElement("h1", args) }
func H2(args ...any) *Element      { return createElement("h2", args) }
func H3(args ...any) *Element      { return createElement("h3", args) }
func H4(args ...any) *Element      { return createElement("h4", args) }
func H5(args ...any) *Element      { return createElement("h5", args) }
func H6(args ...any) *Element      { return createElement("h6", args) }
func Hgroup(args ...any) *Element  { return createElement("hgroup", args) }

// Text content elements

func Div(args ...any) *Element        { return createElement("div", args) }
func P(args ...any) *Element          { return createElement("p", args) }
func Span(args ...any) *Element       { return createElement("span", args) }
func Pre(args ...any) *Element        { return createElement("pre", args) }
func Blockquote(args ...any) *Element { return createElement("blockquote", args) }
func Ul(args ...any) *Element         { return createElement("ul", args) }
func Ol(args ...any) *Element         { return createElement("ol", args) }
func Li(args ...any) *Element         { return createElement("li", args) }
func Dl(args ...any) *Element         { return createElement("dl", args) }
func Dt(args ...any) *Element         { return createElement("dt", args) }
func Dd(args ...any) *Element         { return createElement("dd", args) }
func Hr(args ...any) *Element         { return createElement("hr", args) }
func Figure(args ...any) *Element     { return createElement("figure", args) }
func Figcaption(args ...any) *Element { return createElement("figcaption", args) }

// Inline text semantics

func A(args ...any) *Element      { return createElement("a", args) }
func Strong(args ...any) *Element { return createElement("strong", args) }
func Em(args ...any) *Element     { return createElement("em", args) }
func B(args ...any) *Element      { return createElement("b", args) }
func I(args ...any) *Element      { return createElement("i", args) }
func U(args ...any) *Element      { return createElement("u", args) }
func S(args ...any) *Element      { return createElement("s", args) }
func Small(args ...any) *Element  { return createElement("small", args) }
func Mark(args ...any) *Element   { return createElement("mark", args) }
func Sub(args ...any) *Element    { return createElement("sub", args) }
func Sup(args ...any) *Element    { return createElement("sup", args) }
func Code(args ...any) *Element   { return createElement("code", args) }
func Kbd(args ...any) *Element    { return createElement("kbd", args) }
func Samp(args ...any) *Element   { return createElement("samp", args) }
func Var(args ...any) *Element    { return createElement("var", args) }
func Abbr(args ...any) *Element   { return createElement("abbr", args) }
func Time_(args ...any) *Element  { return createElement("time", args) }
func Cite(args ...any) *Element   { return createElement("cite", args) }
func Q(args ...any) *Element      { return createElement("q", args) }
func Dfn(args ...any) *Element    { return createElement("dfn", args) }
func Ruby(args ...any) *Element   { return createElement("ruby", args) }
func Rt(args ...any) *Element     { return createElement("rt", args) }
func Rp(args ...any) *Element     { return createElement("rp", args) }
func Bdi(args ...any) *Element    { return createElement("bdi", args) }
func Bdo(args ...any) *Element    { return createElement("bdo", args) }

// DataElement creates a <data> HTML element.
// Note: For data-* attributes, use Data(key, value) from attributes.go instead.
func DataElement(args ...any) *Element { return createElement("data", args) }
func Br(args ...any) *Element          { return createElement("br", args) }
func Wbr(args ...any) *Element         { return createElement("wbr", args) }

// Form elements

func Form(args ...any) *Element     { return createElement("form", args) }
func Input(args ...any) *Element    { return createElement("input", args) }
func Textarea(args ...any) *Element { return createElement("textarea", args) }
func Select(args ...any) *Element   { return createElement("select", args) }
func Option(args ...any) *Element   { return createElement("option", args) }
func Optgroup(args ...any) *Element { return createElement("optgroup", args) }
func Button(args ...any) *Element   { return createElement("button", args) }
func Label(args ...any) *Element    { return createElement("label", args) }
func Fieldset(args ...any) *Element { return createElement("fieldset", args) }
func Legend(args ...any) *Element   { return createElement("legend", args) }
func Datalist(args ...any) *Element { return createElement("datalist", args) }
func Output(args ...any) *Element   { return createElement("output", args) }
func Progress(args ...any) *Element { return createElement("progress", args) }
func Meter(args ...any) *Element    { return createElement("meter", args) }

// Table elements

func Table(args ...any) *Element    { return createElement("table", args) }
func Thead(args ...any) *Element    { return createElement("thead", args) }
func Tbody(args ...any) *Element    { return createElement("tbody", args) }
func Tfoot(args ...any) *Element    { return createElement("tfoot", args) }
func Tr(args ...any) *Element       { return createElement("tr", args) }
func Th(args ...any) *Element       { return createElement("th", args) }
func Td(args ...any) *Element       { return createElement("td", args) }
func Caption(args ...any) *Element  { return createElement("caption", args) }
func Colgroup(args ...any) *Element { return createElement("colgroup", args) }
func Col(args ...any) *Element      { return createElement("col", args) }

// Media elements

func Img(args ...any) *Element     { return createElement("img", args) }
func Picture(args ...any) *Element { return createElement("picture", args) }
func Source(args ...any) *Element  { return createElement("source", args) }
func Video(args ...any) *Element   { return createElement("video", args) }
func Audio(args ...any) *Element   { return createElement("audio", args) }
func Track(args ...any) *Element   { return createElement("track", args) }
func Iframe(args ...any) *Element  { return createElement("iframe", args) }
func Embed(args ...any) *Element   { return createElement("embed", args) }
func Object(args ...any) *Element  { return createElement("object", args) }
func Param(args ...any) *Element   { return createElement("param", args) }
func Canvas(args ...any) *Element  { return createElement("canvas", args) }
func Svg(args ...any) *Element     { return createElement("svg", args) }
func Math(args ...any) *Element    { return createElement("math", args) }
func Map_(args ...any) *Element    { return createElement("map", args) }
func Area(args ...any) *Element    { return createElement("area", args) }

// Interactive elements

func Details(args ...any) *Element { return createElement("details", args) }
func Summary(args ...any) *Element { return createElement("summary", args) }
func Dialog(args ...any) *Element  { return createElement("dialog", args) }
func Menu(args ...any) *Element    { return createElement("menu", args) }

// Scripting elements

func Script(args ...any) *Element   { return createElement("script", args) }
func Noscript(args ...any) *Element { return createElement("noscript", args) }
func Template(args ...any) *Element { return createElement("template", args) }
func Slot(args ...any) *Element     { return createElement("slot", args) }
func StyleEl(args ...any) *Element  { return createElement("style", args) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *Element {
	return createElement(tag, args)
}
