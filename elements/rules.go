package elements

import (
	"github.com/npillmayer/contentmodel/category"
	"github.com/npillmayer/contentmodel/model"
)

// optionScope is bound while the content of an option element evaluates.
type optionScope struct{}

func tag(name string) *category.Category {
	return category.Default.ForTag(name)
}

var (
	flow             = model.InCategory(category.Flow)
	phrasing         = model.InCategory(category.Phrasing)
	metadata         = model.InCategory(category.Metadata)
	heading          = model.InCategory(category.Heading)
	sectioning       = model.InCategory(category.Sectioning)
	interactive      = model.InCategory(category.Interactive)
	scriptSupporting = model.InCategory(category.ScriptSupporting)
	headings         = model.IsTag("h1", "h2", "h3", "h4", "h5", "h6")
)

// void is the rule of void elements, which never have children.
func void() *model.Model {
	return model.Nothing().Named("void")
}

func flowContent(name string) *model.Model {
	return model.ZeroOrMore(flow).Named(name)
}

func phrasingContent(name string) *model.Model {
	return model.ZeroOrMore(phrasing).Named(name)
}

// descriptionGroups matches groups of dt elements followed by dd elements.
func descriptionGroups() *model.Model {
	return model.Runs(scriptSupporting, true, model.Plus(model.IsTag("dt")), model.Plus(model.IsTag("dd")))
}

// --- Document metadata -----------------------------------------------------

func htmlRule() *model.Model {
	return model.Sequence(
		model.ExactlyOneOfCategory(tag("head")),
		model.ExactlyOneOfCategory(tag("body")),
	).Named("html-children")
}

func headRule() *model.Model {
	return model.And(
		model.ZeroOrMore(metadata),
		model.ContainsExactlyOne(tag("title")),
		model.ContainsAtMostOne(tag("base")),
	).Named("head-children")
}

func titleRule() *model.Model  { return model.NoChildElements().Named("title-text") }
func styleRule() *model.Model  { return model.NoChildElements().Named("style-text") }
func scriptRule() *model.Model { return model.NoChildElements().Named("script-text") }

func templateRule() *model.Model { return model.Unverified().Named("template-contents") }
func noscriptRule() *model.Model { return model.Unverified().Named("noscript-contents") }

// --- Sections --------------------------------------------------------------

func bodyRule() *model.Model { return flowContent("body-children") }

func mainRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.AncestorsWithin("html", "body", "div", "form"),
	).Named("main-placement")
}

func headerRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(model.IsTag("header", "footer"), "no header or footer element descendants"),
	).Named("header-children")
}

func footerRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(model.IsTag("header", "footer"), "no header or footer element descendants"),
	).Named("footer-children")
}

func addressRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(
			model.AnyOf(heading, sectioning, model.IsTag("header", "footer", "address")),
			"no heading content, sectioning content, header, footer or address descendants"),
	).Named("address-children")
}

func headingRule(name string) *model.Model { return phrasingContent(name + "-children") }

func hgroupRule() *model.Model {
	return model.Runs(scriptSupporting, false,
		model.Star(model.IsTag("p")),
		model.Once(headings),
		model.Star(model.IsTag("p")),
	).Named("hgroup-children")
}

// --- Grouping content ------------------------------------------------------

func pRule() *model.Model { return phrasingContent("p-children") }

func divRule() *model.Model {
	return model.Choice(
		model.ZeroOrMore(flow),
		descriptionGroups(),
	).Named("div-children")
}

func ulRule() *model.Model {
	return model.ZeroOrMore(model.AnyOf(model.IsTag("li"), scriptSupporting)).Named("ul-items")
}

func olRule() *model.Model {
	return model.ZeroOrMore(model.AnyOf(model.IsTag("li"), scriptSupporting)).Named("ol-items")
}

func liRule() *model.Model { return flowContent("li-children") }

func dlRule() *model.Model {
	return model.Choice(
		descriptionGroups(),
		model.OneOrMore(model.AnyOf(model.IsTag("div"), scriptSupporting)),
	).Named("dl-children")
}

func dtRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(
			model.AnyOf(model.IsTag("header", "footer"), sectioning, heading),
			"no header, footer, sectioning content or heading content descendants"),
	).Named("dt-children")
}

func ddRule() *model.Model { return flowContent("dd-children") }

func figureRule() *model.Model {
	caption := model.IsTag("figcaption")
	rest := model.Star(model.Not(caption))
	return model.Choice(
		model.Runs(model.Matcher{}, false, model.Optional(caption), rest),
		model.Runs(model.Matcher{}, false, rest, model.Optional(caption)),
	).Named("figure-children")
}

func figcaptionRule() *model.Model { return flowContent("figcaption-children") }

func detailsRule() *model.Model {
	return model.Runs(model.Matcher{}, false,
		model.Once(model.IsTag("summary")),
		model.Star(flow),
	).Named("details-children")
}

func summaryRule() *model.Model {
	return model.ZeroOrMore(model.AnyOf(phrasing, heading)).Named("summary-children")
}

// --- Text-level semantics --------------------------------------------------

func aRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(interactive, "no interactive content descendants"),
		model.NoDescendant(model.HasAttr("tabindex"), "no descendants with a tabindex attribute"),
	).Named("a-children")
}

func emRule() *model.Model     { return phrasingContent("em-children") }
func strongRule() *model.Model { return phrasingContent("strong-children") }

// spanRule accepts phrasing content. Inside option elements, a span may
// only contain text.
func spanRule() *model.Model {
	inOption := model.Func("span-in-option", "text only, when inside an option element",
		func(ctx model.Context, n model.Node) model.Verdict {
			if _, ok := ctx.Lookup(optionScope{}); !ok {
				return model.Accept()
			}
			for _, ch := range n.Children() {
				if ch.IsElement() {
					return model.RejectFor(ch, "%s inside a span inside an option", model.Label(ch))
				}
			}
			return model.Accept()
		})
	return model.And(model.ZeroOrMore(phrasing), inOption).Named("span-children")
}

// --- Tabular data ----------------------------------------------------------

func tableRule() *model.Model {
	return model.Runs(scriptSupporting, false,
		model.Optional(model.IsTag("caption")),
		model.Star(model.IsTag("colgroup")),
		model.Optional(model.IsTag("thead")),
		model.Star(model.IsTag("tbody", "tr")),
		model.Optional(model.IsTag("tfoot")),
	).Named("table-children")
}

func captionRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(model.IsTag("table"), "no table descendants"),
	).Named("caption-children")
}

func colgroupRule() *model.Model {
	return model.MustExpr("colgroup-children",
		`"span" in attrs ? len(children) == 0 : all(children, {.tag in ["col", "template"]})`,
	).Describing("nothing if the span attribute is present, otherwise zero or more col or template elements")
}

func theadRule() *model.Model {
	return model.AllChildrenPass(model.AnyOf(model.IsTag("tr"), scriptSupporting)).Named("thead-rows")
}

func tbodyRule() *model.Model {
	return model.AllChildrenPass(model.AnyOf(model.IsTag("tr"), scriptSupporting)).Named("tbody-rows")
}

func tfootRule() *model.Model {
	return model.AllChildrenPass(model.AnyOf(model.IsTag("tr"), scriptSupporting)).Named("tfoot-rows")
}

func trRule() *model.Model {
	return model.AllChildrenPass(model.AnyOf(model.IsTag("td", "th"), scriptSupporting)).Named("tr-cells")
}

func tdRule() *model.Model { return flowContent("td-children") }

func thRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(
			model.AnyOf(model.IsTag("header", "footer"), sectioning, heading),
			"no header, footer, sectioning content or heading content descendants"),
	).Named("th-children")
}

// --- Forms -----------------------------------------------------------------

func formRule() *model.Model {
	return model.And(
		model.ZeroOrMore(flow),
		model.NoDescendant(model.IsTag("form"), "no form element descendants"),
	).Named("form-children")
}

func labelRule() *model.Model {
	return model.And(
		model.ZeroOrMore(phrasing),
		model.NoDescendant(model.IsTag("label"), "no label element descendants"),
	).Named("label-children")
}

func buttonRule() *model.Model {
	return model.And(
		model.ZeroOrMore(phrasing),
		model.NoDescendant(model.AnyOf(interactive, model.HasAttr("tabindex")),
			"no interactive content or tabindex descendants"),
	).Named("button-children")
}

func selectRule() *model.Model {
	return model.ZeroOrMore(
		model.AnyOf(model.IsTag("option", "optgroup", "hr"), scriptSupporting),
	).Named("select-children")
}

func optgroupRule() *model.Model {
	return model.ZeroOrMore(model.AnyOf(model.IsTag("option"), scriptSupporting)).Named("optgroup-children")
}

func optionRule() *model.Model {
	return model.And(
		model.ZeroOrMore(phrasing),
		model.NoDescendant(interactive, "no interactive content descendants"),
	).Named("option-children")
}
