package model

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/contentmodel/category"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test nodes ------------------------------------------------------------

type tnode struct {
	tag      string
	text     string
	cats     category.Set
	attrs    map[string]string
	children []*tnode
	parent   *tnode
}

var reg = category.NewRegistry("")

func el(tag string, cats []*category.Category, children ...*tnode) *tnode {
	n := &tnode{tag: tag, cats: category.SetOf(append(cats, reg.ForTag(tag))...)}
	for _, ch := range children {
		ch.parent = n
		n.children = append(n.children, ch)
	}
	return n
}

func txt(s string) *tnode {
	return &tnode{text: s, cats: category.TextCategories}
}

func (n *tnode) withAttr(k, v string) *tnode {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[k] = v
	return n
}

func (n *tnode) Tag() string                   { return n.tag }
func (n *tnode) IsElement() bool               { return n.tag != "" }
func (n *tnode) Text() string                  { return n.text }
func (n *tnode) Categories() category.Set      { return n.cats }
func (n *tnode) Attributes() map[string]string { return n.attrs }
func (n *tnode) Location() string              { return "test:" + n.tag }
func (n *tnode) Children() []Node {
	chs := make([]Node, len(n.children))
	for i, c := range n.children {
		chs[i] = c
	}
	return chs
}
func (n *tnode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func check(m *Model, n *tnode) Verdict {
	return m.Check(NoContext, n, n.Children())
}

var (
	flow     = []*category.Category{category.Flow}
	phrasing = []*category.Category{category.Flow, category.Phrasing}
)

// --- Tests -----------------------------------------------------------------

func TestSequenceExactness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.model")
	defer teardown()
	//
	head, body := reg.ForTag("head"), reg.ForTag("body")
	seq := Sequence(ExactlyOneOfCategory(head), ExactlyOneOfCategory(body))
	var cases = []struct {
		children []string
		ok       bool
	}{
		{[]string{"head", "body"}, true},
		{[]string{"body", "head"}, false},
		{[]string{"head"}, false},
		{[]string{"head", "body", "head"}, false},
		{nil, false},
	}
	for _, c := range cases {
		var chs []*tnode
		for _, tag := range c.children {
			chs = append(chs, el(tag, nil))
		}
		html := el("html", nil, chs...)
		v := check(seq, html)
		if v.OK != c.ok {
			t.Errorf("sequence over %v: expected ok=%v, have %v (%s)", c.children, c.ok, v.OK, v.Note)
		}
	}
	assert.Equal(t, "head followed by body", seq.Describe().String())
}

func TestSequenceReportsOffendingChild(t *testing.T) {
	head, body := reg.ForTag("head"), reg.ForTag("body")
	seq := Sequence(ExactlyOneOfCategory(head), ExactlyOneOfCategory(body))
	b := el("body", nil)
	html := el("html", nil, b, el("head", nil))
	v := check(seq, html)
	require.False(t, v.OK)
	assert.Same(t, b, v.Offender)
	assert.Contains(t, v.Note, "child #1")
}

func TestSequenceWithCompositeSubModels(t *testing.T) {
	// sub-models see a one-element sub-list
	seq := Sequence(OneOrMore(IsTag("dt")), Choice(ExactlyOneOfCategory(reg.ForTag("dd")), Nothing()))
	assert.True(t, check(seq, el("dl", nil, el("dt", nil), el("dd", nil))).OK)
	assert.False(t, check(seq, el("dl", nil, el("dd", nil), el("dd", nil))).OK)
}

func TestNothingAndTrivial(t *testing.T) {
	hr := el("hr", flow)
	assert.True(t, check(Nothing(), hr).OK)
	hr = el("hr", flow, txt("x"))
	v := check(Nothing(), hr)
	assert.False(t, v.OK)
	assert.Equal(t, "text", Label(v.Offender))
	assert.True(t, check(Trivial(), hr).OK)
	assert.True(t, check(Unverified(), hr).OK)
}

func TestNoChildElements(t *testing.T) {
	title := el("title", nil, txt("a"), txt("b"))
	assert.True(t, check(NoChildElements(), title).OK)
	title = el("title", nil, txt("a"), el("em", phrasing))
	assert.False(t, check(NoChildElements(), title).OK)
}

func TestCategoryIdentityNotName(t *testing.T) {
	flow1 := category.New("Flow Content", "")
	flow2 := category.New("Flow Content", "")
	div := &tnode{tag: "div", cats: category.SetOf(flow1)}
	parent := el("x", nil, div)
	if !check(ExactlyOneOfCategory(flow1), parent).OK {
		t.Error("expected child of flow1 to be accepted")
	}
	if check(ExactlyOneOfCategory(flow2), parent).OK {
		t.Error("expected look-alike category not to be interchangeable")
	}
}

func TestChoiceIsOrderIndependent(t *testing.T) {
	m1 := ZeroOrMore(IsTag("li"))
	m2 := OneOrMore(IsTag("dt"))
	lists := []*tnode{
		el("x", nil, el("li", nil), el("li", nil)),
		el("x", nil, el("dt", nil)),
		el("x", nil, el("li", nil), el("dt", nil)),
		el("x", nil),
	}
	for i, l := range lists {
		a := check(Choice(m1, m2), l).OK
		b := check(Choice(m2, m1), l).OK
		expected := check(m1, l).OK || check(m2, l).OK
		if a != b || a != expected {
			t.Errorf("list %d: choice results differ: %v / %v, expected %v", i, a, b, expected)
		}
	}
	d := Choice(m1, m2).Describe()
	assert.Equal(t, "one of the following: zero or more li, or one or more dt", d.String())
}

func TestZeroOrMoreOneOrMore(t *testing.T) {
	p := InCategory(category.Phrasing)
	assert.True(t, check(ZeroOrMore(p), el("p", nil)).OK)
	assert.False(t, check(OneOrMore(p), el("p", nil)).OK)
	v := check(ZeroOrMore(p), el("p", nil, txt("a"), el("div", flow)))
	assert.False(t, v.OK)
	assert.Equal(t, "<div> is not phrasing content", v.Note)
	assert.True(t, check(OneOrMore(p), el("p", nil, txt("a"), el("em", phrasing))).OK)
}

func TestAndContains(t *testing.T) {
	title := reg.ForTag("title")
	head := func(children ...*tnode) *tnode { return el("head", nil, children...) }
	m := And(ZeroOrMore(InCategory(category.Metadata)), ContainsExactlyOne(title))
	meta := []*category.Category{category.Metadata}
	assert.True(t, check(m, head(el("meta", meta), el("title", meta))).OK)
	assert.False(t, check(m, head(el("meta", meta))).OK)
	second := el("title", meta)
	v := check(m, head(el("title", meta), el("meta", meta), second))
	assert.False(t, v.OK)
	assert.Same(t, second, v.Offender)
	//
	atMost := ContainsAtMostOne(title)
	assert.True(t, check(atMost, head()).OK)
	assert.False(t, check(atMost, head(el("title", nil), el("title", nil))).OK)
	assert.Equal(t, "all of the following: zero or more metadata content, and exactly one title",
		m.Describe().String())
}

func TestAllChildrenPass(t *testing.T) {
	rowish := AnyOf(IsTag("tr"), InCategory(category.ScriptSupporting))
	m := AllChildrenPass(rowish)
	script := el("script", []*category.Category{category.ScriptSupporting})
	assert.True(t, check(m, el("tbody", nil, el("tr", nil), script, el("tr", nil))).OK)
	assert.False(t, check(m, el("tbody", nil, el("td", nil))).OK)
	assert.Equal(t, "only tr or script-supporting elements", m.Describe().String())
}

func TestNoDescendantIsTransitive(t *testing.T) {
	inner := el("a", phrasing)
	outer := el("a", phrasing,
		el("span", phrasing,
			el("em", phrasing,
				el("strong", phrasing, inner))))
	m := NoDescendant(IsTag("a"), "no nested links")
	v := check(m, outer)
	if v.OK {
		t.Fatal("expected nested <a> three levels deep to be rejected")
	}
	assert.Same(t, inner, v.Offender)
	assert.True(t, check(m, el("a", phrasing, el("span", phrasing, txt("ok")))).OK)
	assert.Equal(t, "no nested links", m.Describe().String())
}

func TestNoDescendantFindsFirstInDocumentOrder(t *testing.T) {
	first := el("button", phrasing).withAttr("id", "1")
	second := el("button", phrasing).withAttr("id", "2")
	root := el("button", phrasing, el("span", phrasing, first), second)
	v := check(NoDescendant(IsTag("button"), ""), root)
	require.False(t, v.OK)
	id, _ := Attr(v.Offender, "id")
	assert.Equal(t, "1", id)
}

func TestAncestorsWithin(t *testing.T) {
	main := el("main", flow)
	el("html", nil, el("body", flow, el("div", flow, main)))
	m := AncestorsWithin("html", "body", "div", "form")
	assert.True(t, check(m, main).OK)
	//
	nested := el("main", flow)
	section := el("section", flow, nested)
	el("html", nil, el("body", flow, section))
	v := check(m, nested)
	require.False(t, v.OK)
	assert.Same(t, section, v.Offender)
	assert.Contains(t, v.Note, "<main> is nested inside <section>")
	assert.Contains(t, v.Note, "test:section")
}

func TestFuncUsesContext(t *testing.T) {
	type key struct{}
	m := Func("in-option", "text only inside options", func(ctx Context, n Node) Verdict {
		if v, ok := ctx.Lookup(key{}); ok && v.(bool) {
			return NoChildElements().Check(ctx, n, n.Children())
		}
		return Accept()
	})
	span := el("span", phrasing, el("em", phrasing))
	assert.True(t, m.Check(nil, span, span.Children()).OK)
	assert.False(t, m.Check(ctxMap{key{}: true}, span, span.Children()).OK)
	assert.Equal(t, "in-option", m.Name())
	assert.Equal(t, "other", m.Describing("other").Describe().String())
}

type ctxMap map[interface{}]interface{}

func (c ctxMap) Lookup(k interface{}) (interface{}, bool) {
	v, ok := c[k]
	return v, ok
}

func TestNamedKeepsSemantics(t *testing.T) {
	m := Nothing()
	n := m.Named("hr-children")
	assert.Equal(t, "nothing", m.Name())
	assert.Equal(t, "hr-children", n.Name())
	assert.Equal(t, KindNothing, n.Kind())
}

func TestExpectationRender(t *testing.T) {
	m := Choice(
		Sequence(ExactlyOneOfCategory(reg.ForTag("head")), ExactlyOneOfCategory(reg.ForTag("body"))),
		Nothing(),
	)
	out := m.Describe().Render()
	t.Logf("rendered expectation:\n%s", out)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "one of the following", lines[0])
	assert.Contains(t, lines[1], "in this order")
	assert.Contains(t, lines[2], "head")
	assert.Contains(t, lines[3], "body")
	assert.Contains(t, lines[4], "no content")
	assert.Equal(t, "no content", Nothing().Describe().Render())
}

func TestKindNames(t *testing.T) {
	for k := KindNothing; k <= KindExpr; k++ {
		if strings.HasPrefix(k.String(), "<") {
			t.Errorf("kind %d has no name", k)
		}
	}
	assert.Equal(t, "<unknown>", Kind(200).String())
	assert.Equal(t, fmt.Sprintf("nothing[%s]", "no content"), Nothing().String())
}
