package elements

import (
	"strings"

	"github.com/npillmayer/contentmodel/category"
	"github.com/npillmayer/contentmodel/expand"
	"github.com/npillmayer/contentmodel/model"
	"github.com/npillmayer/contentmodel/verify"
)

// Builder creates verified element expressions for a single Verifier.
// Source locations of generator calls are recorded for reports.
type Builder struct {
	v      *verify.Verifier
	custom map[string]*verify.Descriptor
}

// New creates a builder for elements verified by v.
func New(v *verify.Verifier) *Builder {
	if v == nil {
		v = verify.New(nil)
	}
	return &Builder{v: v, custom: make(map[string]*verify.Descriptor)}
}

// Verifier returns the verifier of b.
func (b *Builder) Verifier() *verify.Verifier {
	return b.v
}

// Run evaluates e and returns the generated markup, with reports placed
// before the elements they are about.
func (b *Builder) Run(e expand.Expr) (string, error) {
	return b.v.Run(e)
}

// Text creates a text node. s is escaped on output.
func (b *Builder) Text(s string) expand.Expr {
	return b.v.TextAt(verify.Caller(1), s)
}

// Element creates an element for an arbitrary tag. Tags missing from the
// catalog are treated like custom elements: they count as flow and phrasing
// content, and their content is not verified.
func (b *Builder) Element(tag string, attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el(strings.ToLower(tag), attrs, children)
}

// el must be called directly from a generator method, as it takes the
// location from the caller of that method.
func (b *Builder) el(tag string, attrs Attrs, children []expand.Expr) expand.Expr {
	loc := verify.Caller(2)
	parts := make([]expand.Expr, 0, len(children)+2)
	parts = append(parts, expand.Text(startTag(tag, attrs)))
	parts = append(parts, children...)
	if !IsVoid(tag) {
		parts = append(parts, expand.Text(endTag(tag)))
	}
	return b.v.ElementAt(loc, b.descriptor(tag), attrs, expand.Seq(parts...))
}

func (b *Builder) descriptor(tag string) *verify.Descriptor {
	if d, ok := Lookup(tag); ok {
		return d
	}
	if d, ok := b.custom[tag]; ok {
		return d
	}
	tracer().Infof("tag <%s> is not in the catalog, content will not be verified", tag)
	d := &verify.Descriptor{
		Tag:        tag,
		Model:      model.Unverified(),
		Categories: category.SetOf(category.Flow, category.Phrasing, category.Palpable),
	}
	b.custom[tag] = d
	return d
}

// --- Document metadata -----------------------------------------------------

// HTML creates an html element.
func (b *Builder) HTML(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("html", attrs, children)
}

// Head creates a head element.
func (b *Builder) Head(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("head", attrs, children)
}

// Title creates a title element.
func (b *Builder) Title(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("title", attrs, children)
}

// Base creates a base element, which has no content.
func (b *Builder) Base(attrs Attrs) expand.Expr { return b.el("base", attrs, nil) }

// Link creates a link element, which has no content.
func (b *Builder) Link(attrs Attrs) expand.Expr { return b.el("link", attrs, nil) }

// Meta creates a meta element, which has no content.
func (b *Builder) Meta(attrs Attrs) expand.Expr { return b.el("meta", attrs, nil) }

// Style creates a style element.
func (b *Builder) Style(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("style", attrs, children)
}

// Script creates a script element.
func (b *Builder) Script(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("script", attrs, children)
}

// Template creates a template element.
func (b *Builder) Template(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("template", attrs, children)
}

// Noscript creates a noscript element.
func (b *Builder) Noscript(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("noscript", attrs, children)
}

// --- Sections --------------------------------------------------------------

// Body creates a body element.
func (b *Builder) Body(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("body", attrs, children)
}

// Article creates an article element.
func (b *Builder) Article(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("article", attrs, children)
}

// Section creates a section element.
func (b *Builder) Section(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("section", attrs, children)
}

// Nav creates a nav element.
func (b *Builder) Nav(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("nav", attrs, children)
}

// Aside creates an aside element.
func (b *Builder) Aside(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("aside", attrs, children)
}

// H1 creates an h1 element.
func (b *Builder) H1(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("h1", attrs, children)
}

// H2 creates an h2 element.
func (b *Builder) H2(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("h2", attrs, children)
}

// H3 creates an h3 element.
func (b *Builder) H3(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("h3", attrs, children)
}

// H4 creates an h4 element.
func (b *Builder) H4(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("h4", attrs, children)
}

// H5 creates an h5 element.
func (b *Builder) H5(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("h5", attrs, children)
}

// H6 creates an h6 element.
func (b *Builder) H6(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("h6", attrs, children)
}

// Hgroup creates an hgroup element.
func (b *Builder) Hgroup(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("hgroup", attrs, children)
}

// Header creates a header element.
func (b *Builder) Header(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("header", attrs, children)
}

// Footer creates a footer element.
func (b *Builder) Footer(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("footer", attrs, children)
}

// Address creates an address element.
func (b *Builder) Address(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("address", attrs, children)
}

// --- Grouping content ------------------------------------------------------

// P creates a p element.
func (b *Builder) P(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("p", attrs, children)
}

// Hr creates an hr element, which has no content.
func (b *Builder) Hr(attrs Attrs) expand.Expr { return b.el("hr", attrs, nil) }

// Ol creates an ol element.
func (b *Builder) Ol(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("ol", attrs, children)
}

// Ul creates a ul element.
func (b *Builder) Ul(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("ul", attrs, children)
}

// Li creates a li element.
func (b *Builder) Li(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("li", attrs, children)
}

// Dl creates a dl element.
func (b *Builder) Dl(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("dl", attrs, children)
}

// Dt creates a dt element.
func (b *Builder) Dt(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("dt", attrs, children)
}

// Dd creates a dd element.
func (b *Builder) Dd(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("dd", attrs, children)
}

// Figure creates a figure element.
func (b *Builder) Figure(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("figure", attrs, children)
}

// Figcaption creates a figcaption element.
func (b *Builder) Figcaption(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("figcaption", attrs, children)
}

// Main creates a main element.
func (b *Builder) Main(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("main", attrs, children)
}

// Div creates a div element.
func (b *Builder) Div(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("div", attrs, children)
}

// --- Text-level semantics --------------------------------------------------

// A creates an a element.
func (b *Builder) A(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("a", attrs, children)
}

// Em creates an em element.
func (b *Builder) Em(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("em", attrs, children)
}

// Strong creates a strong element.
func (b *Builder) Strong(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("strong", attrs, children)
}

// Span creates a span element.
func (b *Builder) Span(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("span", attrs, children)
}

// Br creates a br element, which has no content.
func (b *Builder) Br(attrs Attrs) expand.Expr { return b.el("br", attrs, nil) }

// Img creates an img element, which has no content.
func (b *Builder) Img(attrs Attrs) expand.Expr { return b.el("img", attrs, nil) }

// --- Tabular data ----------------------------------------------------------

// Table creates a table element.
func (b *Builder) Table(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("table", attrs, children)
}

// Caption creates a caption element.
func (b *Builder) Caption(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("caption", attrs, children)
}

// Colgroup creates a colgroup element.
func (b *Builder) Colgroup(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("colgroup", attrs, children)
}

// Col creates a col element, which has no content.
func (b *Builder) Col(attrs Attrs) expand.Expr { return b.el("col", attrs, nil) }

// Thead creates a thead element.
func (b *Builder) Thead(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("thead", attrs, children)
}

// Tbody creates a tbody element.
func (b *Builder) Tbody(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("tbody", attrs, children)
}

// Tfoot creates a tfoot element.
func (b *Builder) Tfoot(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("tfoot", attrs, children)
}

// Tr creates a tr element.
func (b *Builder) Tr(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("tr", attrs, children)
}

// Td creates a td element.
func (b *Builder) Td(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("td", attrs, children)
}

// Th creates a th element.
func (b *Builder) Th(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("th", attrs, children)
}

// --- Forms -----------------------------------------------------------------

// Form creates a form element.
func (b *Builder) Form(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("form", attrs, children)
}

// Label creates a label element.
func (b *Builder) Label(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("label", attrs, children)
}

// Input creates an input element, which has no content.
func (b *Builder) Input(attrs Attrs) expand.Expr { return b.el("input", attrs, nil) }

// Button creates a button element.
func (b *Builder) Button(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("button", attrs, children)
}

// Select creates a select element.
func (b *Builder) Select(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("select", attrs, children)
}

// Optgroup creates an optgroup element.
func (b *Builder) Optgroup(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("optgroup", attrs, children)
}

// Option binds scoped state for its content, which span elements inside
// the option use to restrict their own content.
func (b *Builder) Option(attrs Attrs, children ...expand.Expr) expand.Expr {
	return expand.With(optionScope{}, true, b.el("option", attrs, children))
}

// --- Interactive elements --------------------------------------------------

// Details creates a details element.
func (b *Builder) Details(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("details", attrs, children)
}

// Summary creates a summary element.
func (b *Builder) Summary(attrs Attrs, children ...expand.Expr) expand.Expr {
	return b.el("summary", attrs, children)
}
