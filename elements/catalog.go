package elements

import (
	"sort"
	"sync"

	"github.com/npillmayer/contentmodel/category"
	"github.com/npillmayer/contentmodel/model"
	"github.com/npillmayer/contentmodel/verify"
)

const semantics = "https://html.spec.whatwg.org/multipage/"

// entry is a row of the catalog table.
type entry struct {
	tag   string
	rule  func() *model.Model
	cats  []*category.Category
	ref   string // page of the standard, relative to semantics
	empty bool   // void element
}

var (
	flowPalpable = []*category.Category{category.Flow, category.Palpable}
	sectioningC  = []*category.Category{category.Flow, category.Sectioning, category.Palpable}
	headingC     = []*category.Category{category.Flow, category.Heading, category.Palpable}
	phrasingC    = []*category.Category{category.Flow, category.Phrasing, category.Palpable}
	scriptC      = []*category.Category{category.Metadata, category.Flow, category.Phrasing,
		category.ScriptSupporting}
	formC = []*category.Category{category.Flow, category.Phrasing, category.Interactive,
		category.FormAssociated, category.Palpable}
	metadataC = []*category.Category{category.Metadata}
)

var table = []entry{
	{tag: "html", rule: htmlRule, ref: "semantics.html"},
	{tag: "head", rule: headRule, ref: "semantics.html"},
	{tag: "title", rule: titleRule, cats: metadataC, ref: "semantics.html"},
	{tag: "base", rule: void, cats: metadataC, ref: "semantics.html", empty: true},
	{tag: "link", rule: void, cats: metadataC, ref: "semantics.html", empty: true},
	{tag: "meta", rule: void, cats: metadataC, ref: "semantics.html", empty: true},
	{tag: "style", rule: styleRule, cats: metadataC, ref: "semantics.html"},
	{tag: "script", rule: scriptRule, cats: scriptC, ref: "scripting.html"},
	{tag: "template", rule: templateRule, cats: scriptC, ref: "scripting.html"},
	{tag: "noscript", rule: noscriptRule, ref: "scripting.html",
		cats: []*category.Category{category.Metadata, category.Flow, category.Phrasing}},
	{tag: "body", rule: bodyRule, ref: "sections.html"},
	{tag: "article", rule: func() *model.Model { return flowContent("article-children") },
		cats: sectioningC, ref: "sections.html"},
	{tag: "section", rule: func() *model.Model { return flowContent("section-children") },
		cats: sectioningC, ref: "sections.html"},
	{tag: "nav", rule: func() *model.Model { return flowContent("nav-children") },
		cats: sectioningC, ref: "sections.html"},
	{tag: "aside", rule: func() *model.Model { return flowContent("aside-children") },
		cats: sectioningC, ref: "sections.html"},
	{tag: "h1", rule: func() *model.Model { return headingRule("h1") }, cats: headingC, ref: "sections.html"},
	{tag: "h2", rule: func() *model.Model { return headingRule("h2") }, cats: headingC, ref: "sections.html"},
	{tag: "h3", rule: func() *model.Model { return headingRule("h3") }, cats: headingC, ref: "sections.html"},
	{tag: "h4", rule: func() *model.Model { return headingRule("h4") }, cats: headingC, ref: "sections.html"},
	{tag: "h5", rule: func() *model.Model { return headingRule("h5") }, cats: headingC, ref: "sections.html"},
	{tag: "h6", rule: func() *model.Model { return headingRule("h6") }, cats: headingC, ref: "sections.html"},
	{tag: "hgroup", rule: hgroupRule, cats: headingC, ref: "sections.html"},
	{tag: "header", rule: headerRule, cats: flowPalpable, ref: "sections.html"},
	{tag: "footer", rule: footerRule, cats: flowPalpable, ref: "sections.html"},
	{tag: "address", rule: addressRule, cats: flowPalpable, ref: "sections.html"},
	{tag: "p", rule: pRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "hr", rule: void, cats: []*category.Category{category.Flow}, ref: "grouping-content.html", empty: true},
	{tag: "ol", rule: olRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "ul", rule: ulRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "li", rule: liRule, ref: "grouping-content.html"},
	{tag: "dl", rule: dlRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "dt", rule: dtRule, ref: "grouping-content.html"},
	{tag: "dd", rule: ddRule, ref: "grouping-content.html"},
	{tag: "figure", rule: figureRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "figcaption", rule: figcaptionRule, ref: "grouping-content.html"},
	{tag: "main", rule: mainRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "div", rule: divRule, cats: flowPalpable, ref: "grouping-content.html"},
	{tag: "a", rule: aRule, ref: "text-level-semantics.html",
		cats: []*category.Category{category.Flow, category.Phrasing, category.Interactive, category.Palpable}},
	{tag: "em", rule: emRule, cats: phrasingC, ref: "text-level-semantics.html"},
	{tag: "strong", rule: strongRule, cats: phrasingC, ref: "text-level-semantics.html"},
	{tag: "span", rule: spanRule, cats: phrasingC, ref: "text-level-semantics.html"},
	{tag: "br", rule: void, cats: []*category.Category{category.Flow, category.Phrasing},
		ref: "text-level-semantics.html", empty: true},
	{tag: "img", rule: void, ref: "embedded-content.html", empty: true,
		cats: []*category.Category{category.Flow, category.Phrasing, category.Embedded, category.Palpable}},
	{tag: "table", rule: tableRule, cats: flowPalpable, ref: "tables.html"},
	{tag: "caption", rule: captionRule, ref: "tables.html"},
	{tag: "colgroup", rule: colgroupRule, ref: "tables.html"},
	{tag: "col", rule: void, ref: "tables.html", empty: true},
	{tag: "tbody", rule: tbodyRule, ref: "tables.html"},
	{tag: "thead", rule: theadRule, ref: "tables.html"},
	{tag: "tfoot", rule: tfootRule, ref: "tables.html"},
	{tag: "tr", rule: trRule, ref: "tables.html"},
	{tag: "td", rule: tdRule, ref: "tables.html"},
	{tag: "th", rule: thRule, ref: "tables.html"},
	{tag: "form", rule: formRule, cats: flowPalpable, ref: "forms.html"},
	{tag: "label", rule: labelRule, ref: "forms.html",
		cats: []*category.Category{category.Flow, category.Phrasing, category.Interactive, category.Palpable}},
	{tag: "input", rule: void, cats: formC, ref: "input.html", empty: true},
	{tag: "button", rule: buttonRule, cats: formC, ref: "form-elements.html"},
	{tag: "select", rule: selectRule, cats: formC, ref: "form-elements.html"},
	{tag: "optgroup", rule: optgroupRule, ref: "form-elements.html"},
	{tag: "option", rule: optionRule, ref: "form-elements.html"},
	{tag: "details", rule: detailsRule, ref: "interactive-elements.html",
		cats: []*category.Category{category.Flow, category.Interactive, category.Palpable}},
	{tag: "summary", rule: summaryRule, ref: "interactive-elements.html"},
}

var catalog struct {
	once  sync.Once
	descs map[string]*verify.Descriptor
	voids map[string]bool
}

func load() {
	catalog.once.Do(func() {
		catalog.descs = make(map[string]*verify.Descriptor, len(table))
		catalog.voids = make(map[string]bool)
		for _, e := range table {
			catalog.descs[e.tag] = &verify.Descriptor{
				Tag:        e.tag,
				Model:      e.rule(),
				Categories: category.SetOf(e.cats...),
				Ref:        semantics + e.ref + "#the-" + e.tag + "-element",
			}
			if e.empty {
				catalog.voids[e.tag] = true
			}
		}
		tracer().Debugf("element catalog holds %d tags", len(catalog.descs))
	})
}

// Lookup returns the descriptor of tag.
func Lookup(tag string) (*verify.Descriptor, bool) {
	load()
	d, ok := catalog.descs[tag]
	return d, ok
}

// IsVoid is true for elements which have a start tag only.
func IsVoid(tag string) bool {
	load()
	return catalog.voids[tag]
}

// Tags returns the tags of the catalog, sorted.
func Tags() []string {
	load()
	tags := make([]string, 0, len(catalog.descs))
	for t := range catalog.descs {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
