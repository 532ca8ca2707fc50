package elements

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/npillmayer/contentmodel/report"
	"github.com/npillmayer/contentmodel/verify"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *Builder {
	r := report.New(report.DefaultLevels(report.DefaultPrefix),
		report.WithFormatter(report.PlainFormatter{}))
	return New(verify.New(r))
}

func TestCatalog(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	tags := Tags()
	assert.Len(t, tags, len(table))
	for _, tag := range tags {
		d, ok := Lookup(tag)
		require.True(t, ok, tag)
		assert.Equal(t, tag, d.Tag)
		assert.NotNil(t, d.Model, tag)
		assert.True(t, strings.HasPrefix(d.Ref, "https://html.spec.whatwg.org/"), tag)
	}
	_, ok := Lookup("blink")
	assert.False(t, ok)
	assert.True(t, IsVoid("br"))
	assert.False(t, IsVoid("p"))
}

func TestRulesAreNotShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	seen := make(map[interface{}]string)
	for _, tag := range Tags() {
		d, _ := Lookup(tag)
		if other, ok := seen[d.Model]; ok {
			t.Errorf("<%s> and <%s> share a content model", tag, other)
		}
		seen[d.Model] = tag
	}
	thead, _ := Lookup("thead")
	tbody, _ := Lookup("tbody")
	assert.NotEqual(t, thead.Model.Name(), tbody.Model.Name())
}

func TestStartTag(t *testing.T) {
	assert.Equal(t, "<p>", startTag("p", nil))
	assert.Equal(t, `<a hidden href="x?a=1&amp;b=2">`,
		startTag("a", Attrs{"href": "x?a=1&b=2", "hidden": ""}))
}

func TestWellFormedPage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	doc := b.HTML(Attrs{"lang": "en"},
		b.Head(nil, b.Meta(Attrs{"charset": "utf-8"}), b.Title(nil, b.Text("Test"))),
		b.Body(nil,
			b.Main(nil,
				b.H1(nil, b.Text("Hello")),
				b.P(nil, b.Text("a < "), b.Em(nil, b.Text("b"))),
			),
		),
	)
	out, err := b.Run(doc)
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	assert.Equal(t, `<html lang="en"><head><meta charset="utf-8"><title>Test</title></head>`+
		`<body><main><h1>Hello</h1><p>a &lt; <em>b</em></p></main></body></html>`, out)
}

func TestDocumentStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	out, err := b.Run(b.HTML(nil,
		b.Body(nil),
		b.Head(nil, b.Meta(nil)), // also lacks a title
	))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 2)
	assert.Equal(t, "html-children", vs[0].Rule)
	assert.True(t, strings.HasPrefix(vs[0].Location, "elements_test.go:"), vs[0].Location)
	assert.Equal(t, "head-children", vs[1].Rule)
	assert.True(t, strings.HasPrefix(out, "warning: <html> at elements_test.go:"), out)
}

func TestVoidElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	out, err := b.Run(b.P(nil, b.Text("a"), b.Br(nil), b.Img(Attrs{"src": "x.png", "alt": "x"})))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	assert.Equal(t, `<p>a<br><img alt="x" src="x.png"></p>`, out)
}

func TestDescriptionLists(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	_, err := b.Run(b.Dl(nil,
		b.Dt(nil, b.Text("term")), b.Dd(nil, b.Text("one")), b.Dd(nil, b.Text("two")),
		b.Dt(nil, b.Text("term")), b.Dd(nil, b.Text("three")),
	))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	//
	b = newBuilder()
	_, err = b.Run(b.Dl(nil, b.Dd(nil, b.Text("orphan")), b.Dt(nil, b.Text("term"))))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 1)
	assert.Equal(t, "dl-children", vs[0].Rule)
	//
	b = newBuilder()
	_, err = b.Run(b.Dl(nil, b.Div(nil, b.Dt(nil, b.Text("t")), b.Dd(nil, b.Text("d")))))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
}

func TestColgroupSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	_, err := b.Run(b.Table(nil,
		b.Colgroup(nil, b.Col(nil), b.Col(nil)),
		b.Colgroup(Attrs{"span": "2"}),
	))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	//
	b = newBuilder()
	_, err = b.Run(b.Colgroup(Attrs{"span": "2"}, b.Col(nil)))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 1)
	assert.Equal(t, "colgroup-children", vs[0].Rule)
}

func TestTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	_, err := b.Run(b.Table(nil,
		b.Caption(nil, b.Text("Totals")),
		b.Thead(nil, b.Tr(nil, b.Th(nil, b.Text("n")))),
		b.Tbody(nil, b.Tr(nil, b.Td(nil, b.Text("1")))),
		b.Tfoot(nil, b.Tr(nil, b.Td(nil, b.Text("1")))),
	))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	//
	b = newBuilder()
	_, err = b.Run(b.Table(nil,
		b.Tbody(nil, b.Tr(nil, b.Td(nil))),
		b.Caption(nil, b.Text("late")),
	))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 1)
	assert.Equal(t, "table-children", vs[0].Rule)
	require.NotNil(t, vs[0].Offender)
	assert.Equal(t, "caption", vs[0].Offender.Tag)
}

func TestSpanInsideOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	_, err := b.Run(b.Div(nil,
		b.Span(nil, b.Em(nil, b.Text("fine outside of options"))),
		b.Select(nil, b.Option(nil, b.Span(nil, b.Text("fine")))),
	))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	//
	b = newBuilder()
	_, err = b.Run(b.Select(nil,
		b.Option(nil, b.Span(nil, b.Em(nil, b.Text("not fine")))),
	))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 1)
	assert.Equal(t, "span", vs[0].Tag)
	assert.Equal(t, "span-children", vs[0].Rule)
	assert.Contains(t, vs[0].Note, "inside an option")
}

func TestInteractiveNesting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	_, err := b.Run(b.A(Attrs{"href": "#"},
		b.Span(nil, b.Button(nil, b.Text("press"))),
	))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 1)
	assert.Equal(t, "a-children", vs[0].Rule)
	assert.Equal(t, "button", vs[0].Offender.Tag)
	//
	b = newBuilder()
	_, err = b.Run(b.Button(nil, b.Span(Attrs{"tabindex": "0"}, b.Text("x"))))
	require.NoError(t, err)
	vs = b.Verifier().Violations()
	require.Len(t, vs, 1)
	assert.Equal(t, "button-children", vs[0].Rule)
}

func TestSectioningRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	_, err := b.Run(b.Body(nil,
		b.Section(nil, b.Main(nil, b.P(nil, b.Text("misplaced")))),
		b.Header(nil, b.Footer(nil, b.Text("nested"))),
		b.Hgroup(nil, b.H1(nil, b.Text("title")), b.P(nil, b.Text("subtitle"))),
	))
	require.NoError(t, err)
	vs := b.Verifier().Violations()
	require.Len(t, vs, 2)
	assert.Equal(t, "main-placement", vs[0].Rule)
	assert.Equal(t, "header-children", vs[1].Rule)
}

func TestUnknownTagsAreNotVerified(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.elements")
	defer teardown()
	//
	b := newBuilder()
	out, err := b.Run(b.Div(nil,
		b.Element("X-Widget", Attrs{"size": "2"}, b.Td(nil), b.Text("anything")),
	))
	require.NoError(t, err)
	assert.Empty(t, b.Verifier().Violations())
	assert.Equal(t, `<div><x-widget size="2"><td></td>anything</x-widget></div>`, out)
}

func TestGeneratorsAreDocumented(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "builder.go", nil, parser.ParseComments)
	require.NoError(t, err)
	count := 0
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !fn.Name.IsExported() {
			continue
		}
		count++
		if fn.Doc == nil || !strings.HasPrefix(fn.Doc.Text(), fn.Name.Name+" ") {
			t.Errorf("%s lacks a doc comment", fn.Name.Name)
		}
	}
	assert.Greater(t, count, len(table))
}
