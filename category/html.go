package category

// SpecBase is the reference base for HTML content categories.
const SpecBase = "https://html.spec.whatwg.org/multipage/dom.html"

// Content categories of the HTML living standard.
// See https://html.spec.whatwg.org/multipage/dom.html#kinds-of-content
var (
	Metadata         = New("metadata content", SpecBase+"#metadata-content")
	Flow             = New("flow content", SpecBase+"#flow-content")
	Sectioning       = New("sectioning content", SpecBase+"#sectioning-content")
	Heading          = New("heading content", SpecBase+"#heading-content")
	Phrasing         = New("phrasing content", SpecBase+"#phrasing-content")
	Embedded         = New("embedded content", SpecBase+"#embedded-content")
	Interactive      = New("interactive content", SpecBase+"#interactive-content")
	Palpable         = New("palpable content", SpecBase+"#palpable-content")
	ScriptSupporting = New("script-supporting elements", SpecBase+"#script-supporting-elements")
	FormAssociated   = New("form-associated elements",
		"https://html.spec.whatwg.org/multipage/forms.html#form-associated-element")
	Text = New("text", SpecBase+"#text-content")
)

// Default is the registry for HTML tag categories.
var Default = NewRegistry("https://html.spec.whatwg.org/multipage/semantics.html")

// TextCategories is the set of categories a text node belongs to.
var TextCategories = SetOf(Text, Flow, Phrasing, Palpable)
