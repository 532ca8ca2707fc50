package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/contentmodel/category"
	"github.com/npillmayer/contentmodel/expand"
	"github.com/npillmayer/contentmodel/model"
	"github.com/npillmayer/contentmodel/report"
	"github.com/npillmayer/contentmodel/tree"
	"github.com/npillmayer/contentmodel/tree/treedbg"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
)

// Verifier builds the tracking tree for one evaluation pass and checks
// every element against its content model.
//
// A Verifier is not safe for concurrent use.
type Verifier struct {
	tree       *tree.Tree[*Tracked]
	reporter   *report.Reporter
	registry   *category.Registry
	strict     bool
	violations []placed
}

// placed is a violation together with the position of its element.
type placed struct {
	pos tree.Marker
	v   report.Violation
}

// scopeKey binds the tracking node of the innermost open element.
type scopeKey struct {
	v *Verifier
}

// Option configures a Verifier.
type Option func(*Verifier)

// Strict makes the verifier report through the strict path of the
// reporter: an incomplete severity configuration aborts the evaluation
// with an error instead of falling back to warnings. Content violations
// alone never abort an evaluation.
func Strict() Option {
	return func(v *Verifier) { v.strict = true }
}

// WithRegistry sets the registry for tag categories. The default is
// category.Default.
func WithRegistry(r *category.Registry) Option {
	return func(v *Verifier) { v.registry = r }
}

// New creates a verifier reporting violations to r. If r is nil, the
// verifier reports at warning level with default settings.
func New(r *report.Reporter, opts ...Option) *Verifier {
	if r == nil {
		r = report.New(report.DefaultLevels(report.DefaultPrefix))
	}
	v := &Verifier{
		tree:     tree.New[*Tracked](),
		reporter: r,
		registry: category.Default,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Element wraps the content expression of an element described by desc.
// content usually renders the start tag, the children and the end tag.
// attrs is the evaluated attribute set, which rules may inspect.
//
// The returned expression opens a tracking node, evaluates content and
// then checks the node's children, reports a violation if needed and
// registers the node with its parent. It resolves to the report fragment
// (if any) followed by the text of content.
func (v *Verifier) Element(desc *Descriptor, attrs map[string]string, content expand.Expr) expand.Expr {
	return v.ElementAt(Caller(1), desc, attrs, content)
}

// ElementAt is like Element, with an explicit source location.
func (v *Verifier) ElementAt(loc string, desc *Descriptor, attrs map[string]string,
	content expand.Expr) expand.Expr {
	//
	if desc == nil || desc.Model == nil {
		panic(fmt.Sprintf("contentmodel.verify: element at %s has no content model", loc))
	}
	return expand.Dynamic(func(env *expand.Env) expand.Expr {
		id := v.open(env, &Tracked{
			Desc:     desc,
			Attrs:    copyAttrs(attrs),
			Location: loc,
			cats:     desc.Categories.With(v.registry.ForTag(desc.Tag)),
			ctx:      env,
		})
		body := expand.With(scopeKey{v}, id, content)
		return expand.Defer(body, func(text string) (expand.Expr, error) {
			fragment, err := v.finalize(id)
			if err != nil {
				return nil, err
			}
			return expand.Text(fragment + text), nil
		})
	})
}

// Text registers a text node and renders s, escaped. Text consisting of
// white space only is rendered but not registered, as inter-element
// white space does not count as content.
func (v *Verifier) Text(s string) expand.Expr {
	return v.TextAt(Caller(1), s)
}

// TextAt is like Text, with an explicit source location.
func (v *Verifier) TextAt(loc string, s string) expand.Expr {
	escaped := html.EscapeString(s)
	if strings.TrimSpace(s) == "" {
		return expand.Text(escaped)
	}
	return expand.Dynamic(func(env *expand.Env) expand.Expr {
		id := v.open(env, &Tracked{
			Text:     s,
			Location: loc,
			cats:     category.TextCategories,
			ctx:      env,
		})
		if err := v.tree.Register(id); err != nil {
			panic(err) // a fresh node cannot be registered already
		}
		return expand.Text(escaped)
	})
}

// Run evaluates e with a fresh evaluator.
func (v *Verifier) Run(e expand.Expr) (string, error) {
	return expand.NewEvaluator().Run(e)
}

// Violations returns the violations found so far, in document order of the
// offending elements. Violations reported at severity off are included.
func (v *Verifier) Violations() []report.Violation {
	ps := make([]placed, len(v.violations))
	copy(ps, v.violations)
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].pos.Less(ps[j].pos)
	})
	vs := make([]report.Violation, len(ps))
	for i, p := range ps {
		vs[i] = p.v
	}
	return vs
}

// Tree exposes the tracking tree, for debugging.
func (v *Verifier) Tree() *tree.Tree[*Tracked] {
	return v.tree
}

// Dump renders the subtree below id as indented text.
func (v *Verifier) Dump(id tree.NodeID) string {
	return treedbg.Print(v.tree, id, label)
}

// --- Lifecycle -------------------------------------------------------------

// open creates a tracking node below the innermost open element of env,
// capturing the current position as the node's marker.
func (v *Verifier) open(env *expand.Env, t *Tracked) tree.NodeID {
	parent := tree.None
	if p, ok := env.Lookup(scopeKey{v}); ok {
		parent = p.(tree.NodeID)
	}
	id := v.tree.NewNode(t, parent, env.Position())
	tracer().Debugf("open %s #%d @%s below #%d", t, id, env.Position(), parent)
	return id
}

// finalize runs once the content of node id is resolved: it sorts the
// children, checks them, reports on failure and registers the node with
// its parent.
func (v *Verifier) finalize(id tree.NodeID) (string, error) {
	node := v.tree.Node(id)
	t := node.Payload
	children := views(v.tree, v.tree.SortChildren(id))
	self := nodeView{t: v.tree, id: id}
	verdict := t.Desc.Model.Check(t.ctx, self, children)
	var fragment string
	if !verdict.OK {
		viol := v.violation(self, verdict)
		tracer().Infof("%s @%s violates %s", t, node.Rank, t.Desc.Model.Name())
		if v.strict {
			var err error
			if fragment, err = v.reporter.ReportStrict(viol); err != nil {
				return "", err
			}
		} else {
			fragment = v.reporter.Report(viol)
		}
		if reported, ok := v.reporter.Last(); ok {
			viol = reported
		}
		v.violations = append(v.violations, placed{pos: node.Rank, v: viol})
	}
	if err := v.tree.Register(id); err != nil {
		return "", fmt.Errorf("finalizing %s: %w", t, err)
	}
	if node.Parent() == tree.None && tracer().GetTraceLevel() >= tracing.LevelDebug {
		tracer().Debugf("verified tree:\n%s", v.Dump(id))
	}
	return fragment, nil
}

func (v *Verifier) violation(n nodeView, verdict model.Verdict) report.Violation {
	t := n.tracked()
	exp := t.Desc.Model.Describe()
	viol := report.Violation{
		Tag:      t.Desc.Tag,
		Rule:     t.Desc.Model.Name(),
		Expected: exp.String(),
		Rendered: exp.Render(),
		Note:     verdict.Note,
		Ref:      t.Desc.Ref,
		Location: t.Location,
		Position: v.tree.Node(n.id).Rank.String(),
	}
	if off := verdict.Offender; off != nil {
		viol.Offender = &report.Offender{Tag: off.Tag(), Location: off.Location()}
	}
	return viol
}

func copyAttrs(attrs map[string]string) map[string]string {
	c := make(map[string]string, len(attrs))
	for k, v := range attrs {
		c[k] = v
	}
	return c
}
