package model

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/npillmayer/contentmodel/category"
)

// Expr creates a custom rule from an expr-lang expression
// (https://expr-lang.org). The expression must evaluate to a boolean and
// may use the following variables:
//
//	tag        string             tag name of the node under test
//	attrs      map[string]string  its attributes
//	children   []map[string]any   children with keys tag, text, element, categories, node
//	ancestors  []string           tag names from the parent up to the root
//	cat        map[string]*category.Category  categories by binding name
//
// and the function
//
//	inCategory(child, c)  true if child belongs to category c
//
// The categories of a child are given as display names, which need not be
// unique. inCategory compares by identity; cat binds the HTML content
// categories (metadata, flow, sectioning, heading, phrasing, embedded,
// interactive, palpable, scriptSupporting, formAssociated, text) plus any
// categories passed to ExprWith.
//
// Example:
//
//	model.Expr("list-items", `all(children, {.tag in ["li", "script", "template"]})`)
func Expr(name, source string) (*Model, error) {
	return ExprWith(name, source, nil)
}

// ExprWith is like Expr, with additional categories bound into cat. A
// binding in cats replaces a predefined one of the same name.
func ExprWith(name, source string, cats map[string]*category.Category) (*Model, error) {
	bound := make(map[string]*category.Category, len(predefined)+len(cats))
	for k, c := range predefined {
		bound[k] = c
	}
	for k, c := range cats {
		bound[k] = c
	}
	prg, err := expr.Compile(source, expr.Env(exprEnv(nil, nil, bound)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("content model %q: %w", name, err)
	}
	return &Model{
		kind:    KindExpr,
		name:    name,
		desc:    source,
		source:  source,
		program: prg,
		cats:    bound,
	}, nil
}

var predefined = map[string]*category.Category{
	"metadata":         category.Metadata,
	"flow":             category.Flow,
	"sectioning":       category.Sectioning,
	"heading":          category.Heading,
	"phrasing":         category.Phrasing,
	"embedded":         category.Embedded,
	"interactive":      category.Interactive,
	"palpable":         category.Palpable,
	"scriptSupporting": category.ScriptSupporting,
	"formAssociated":   category.FormAssociated,
	"text":             category.Text,
}

// inCategory is bound into the environment of expressions.
func inCategory(child map[string]interface{}, c *category.Category) bool {
	n, ok := child["node"].(Node)
	return ok && n != nil && n.Categories().Has(c)
}

// MustExpr is like Expr, but panics if the expression does not compile.
// It is meant for rules declared in package-level variables.
func MustExpr(name, source string) *Model {
	m, err := Expr(name, source)
	if err != nil {
		panic(err)
	}
	return m
}

// Describing returns a copy of a custom rule with description desc.
// It is a no-op for other kinds of rules.
func (m *Model) Describing(desc string) *Model {
	if m.kind == KindFunc || m.kind == KindExpr {
		c := *m
		c.desc = desc
		return &c
	}
	return m
}

func (m *Model) checkExpr(n Node, children []Node) Verdict {
	out, err := expr.Run(m.program, exprEnv(n, children, m.cats))
	if err != nil {
		tracer().Errorf("rule %s: %v", m.Name(), err)
		return Reject("rule %s failed to evaluate: %v", m.Name(), err)
	}
	if ok, _ := out.(bool); !ok {
		return Reject("%s", m.source)
	}
	return Accept()
}

func exprEnv(n Node, children []Node, cats map[string]*category.Category) map[string]interface{} {
	env := map[string]interface{}{
		"tag":        "",
		"attrs":      map[string]string{},
		"children":   []map[string]interface{}{},
		"ancestors":  []string{},
		"cat":        cats,
		"inCategory": inCategory,
	}
	if n == nil {
		return env
	}
	env["tag"] = n.Tag()
	attrs := make(map[string]string, len(n.Attributes()))
	for k, v := range n.Attributes() {
		attrs[k] = v
	}
	env["attrs"] = attrs
	chs := make([]map[string]interface{}, len(children))
	for i, ch := range children {
		chs[i] = map[string]interface{}{
			"tag":        ch.Tag(),
			"text":       ch.Text(),
			"element":    ch.IsElement(),
			"categories": ch.Categories().Names(),
			"node":       ch,
		}
	}
	env["children"] = chs
	var ancestors []string
	for _, anc := range Ancestors(n) {
		ancestors = append(ancestors, anc.Tag())
	}
	if ancestors == nil {
		ancestors = []string{}
	}
	env["ancestors"] = ancestors
	return env
}
