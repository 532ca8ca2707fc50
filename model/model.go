package model

import (
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/npillmayer/contentmodel/category"
)

// Kind is the variant tag of a content model.
type Kind uint8

// Variants of content models.
const (
	KindNothing Kind = iota
	KindTrivial
	KindUnverified
	KindNoChildElements
	KindExactlyOneOfCategory
	KindSequence
	KindChoice
	KindZeroOrMore
	KindOneOrMore
	KindAnd
	KindContainsExactlyOne
	KindContainsAtMostOne
	KindAllChildrenPass
	KindNoDescendant
	KindRuns
	KindFunc
	KindExpr
)

var kindNames = [...]string{
	"nothing", "trivial", "unverified", "no-child-elements", "exactly-one",
	"sequence", "choice", "zero-or-more", "one-or-more", "and",
	"contains-exactly-one", "contains-at-most-one", "all-children-pass",
	"no-descendant", "runs", "func", "expr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown>"
}

// CheckFunc is the signature of custom rules. It receives the scoped
// evaluation context of the node and the node itself; the node's children
// are available through n.Children().
type CheckFunc func(ctx Context, n Node) Verdict

// Model is a content-model rule. Models are immutable after construction
// and may be shared between any number of element descriptors.
type Model struct {
	kind        Kind
	name        string             // rule name, used for logging keys
	cat         *category.Category // category operand
	matcher     Matcher            // single-node operand
	subs        []*Model           // sub-models of combinators
	message     string             // explanation for NoDescendant
	desc        string             // description of custom rules
	fn          CheckFunc          // custom rule
	segments    []Segment          // Runs
	transparent Matcher            // Runs: ignored children
	repeat      bool               // Runs: segments form a repeatable group
	program     *vm.Program        // Expr
	source      string             // Expr
	// Expr: categories bound into the environment
	cats map[string]*category.Category
}

// Kind returns the variant tag of m.
func (m *Model) Kind() Kind {
	return m.kind
}

// Name returns the rule name. Unless set with Named, this is the name of
// the variant.
func (m *Model) Name() string {
	if m.name != "" {
		return m.name
	}
	return m.kind.String()
}

// Named returns a copy of m carrying a rule name. Rule names identify
// rules in logging configuration keys.
func (m *Model) Named(name string) *Model {
	c := *m
	c.name = name
	return &c
}

func (m *Model) String() string {
	return fmt.Sprintf("%s[%s]", m.Name(), m.Describe())
}

// --- Constructors ----------------------------------------------------------

// Nothing accepts only an empty list of children.
func Nothing() *Model {
	return &Model{kind: KindNothing}
}

// Trivial accepts anything. It is used for void elements and for elements
// without constraints.
func Trivial() *Model {
	return &Model{kind: KindTrivial}
}

// Unverified accepts anything, marking a rule which has not been modeled yet.
func Unverified() *Model {
	return &Model{kind: KindUnverified}
}

// NoChildElements accepts text-only content.
func NoChildElements() *Model {
	return &Model{kind: KindNoChildElements}
}

// ExactlyOneOfCategory accepts exactly one child, belonging to c.
func ExactlyOneOfCategory(c *category.Category) *Model {
	return &Model{kind: KindExactlyOneOfCategory, cat: c}
}

// Sequence accepts children matching ms position-wise: the i-th sub-model
// is checked against the one-element list holding the i-th child. The
// number of children must equal the number of sub-models.
func Sequence(ms ...*Model) *Model {
	return &Model{kind: KindSequence, subs: ms}
}

// Choice accepts if at least one of ms accepts the full list of children.
func Choice(ms ...*Model) *Model {
	return &Model{kind: KindChoice, subs: ms}
}

// ZeroOrMore accepts if every child is matched by m.
func ZeroOrMore(m Matcher) *Model {
	return &Model{kind: KindZeroOrMore, matcher: m}
}

// OneOrMore accepts if there is at least one child and every child is
// matched by m.
func OneOrMore(m Matcher) *Model {
	return &Model{kind: KindOneOrMore, matcher: m}
}

// And accepts if all of ms accept.
func And(ms ...*Model) *Model {
	return &Model{kind: KindAnd, subs: ms}
}

// ContainsExactlyOne accepts if exactly one child belongs to c, regardless
// of position and of other children.
func ContainsExactlyOne(c *category.Category) *Model {
	return &Model{kind: KindContainsExactlyOne, cat: c}
}

// ContainsAtMostOne accepts if no more than one child belongs to c.
func ContainsAtMostOne(c *category.Category) *Model {
	return &Model{kind: KindContainsAtMostOne, cat: c}
}

// AllChildrenPass accepts if every child independently satisfies m.
func AllChildrenPass(m Matcher) *Model {
	return &Model{kind: KindAllChildrenPass, matcher: m}
}

// NoDescendant accepts if no transitive descendant is matched by m.
// message explains the constraint in reports.
func NoDescendant(m Matcher, message string) *Model {
	return &Model{kind: KindNoDescendant, matcher: m, message: message}
}

// Func creates a custom rule. desc describes the expectation.
func Func(name, desc string, f CheckFunc) *Model {
	return &Model{kind: KindFunc, name: name, desc: desc, fn: f}
}

// AncestorsWithin creates a custom rule which walks from the parent of a
// node up to the root and rejects on the first ancestor whose tag is not
// in tags. The offending ancestor is reported.
func AncestorsWithin(tags ...string) *Model {
	allowed := IsTag(tags...)
	desc := "all ancestors to be " + allowed.String()
	return Func("ancestors", desc, func(_ Context, n Node) Verdict {
		if anc := AncestorWith(n, Not(allowed)); anc != nil {
			return RejectFor(anc, "%s is nested inside %s at %s", Label(n), Label(anc), anc.Location())
		}
		return Accept()
	})
}

// --- Checking --------------------------------------------------------------

// Check applies m to node n with its children in document order.
func (m *Model) Check(ctx Context, n Node, children []Node) Verdict {
	if ctx == nil {
		ctx = NoContext
	}
	switch m.kind {
	case KindNothing:
		if len(children) > 0 {
			return RejectFor(children[0], "%s is not allowed here", Label(children[0]))
		}
	case KindTrivial:
	case KindUnverified:
		tracer().Debugf("rule %s of %s is not verified", m.Name(), Label(n))
	case KindNoChildElements:
		for _, ch := range children {
			if ch.IsElement() {
				return RejectFor(ch, "child element %s is not allowed here", Label(ch))
			}
		}
	case KindExactlyOneOfCategory:
		if len(children) != 1 {
			return Reject("expected exactly one child, found %d", len(children))
		}
		if !children[0].Categories().Has(m.cat) {
			return RejectFor(children[0], "%s is not %s", Label(children[0]), m.cat.Name())
		}
	case KindSequence:
		return m.checkSequence(ctx, n, children)
	case KindChoice:
		return m.checkChoice(ctx, n, children)
	case KindZeroOrMore, KindAllChildrenPass:
		return checkAll(m.matcher, children)
	case KindOneOrMore:
		if len(children) == 0 {
			return Reject("expected at least one child, found none")
		}
		return checkAll(m.matcher, children)
	case KindAnd:
		for _, sub := range m.subs {
			if v := sub.Check(ctx, n, children); !v.OK {
				return v
			}
		}
	case KindContainsExactlyOne:
		count, second := countIn(m.cat, children)
		if count == 0 {
			return Reject("expected one child that is %s, found none", m.cat.Name())
		} else if count > 1 {
			return RejectFor(second, "expected one child that is %s, found %d", m.cat.Name(), count)
		}
	case KindContainsAtMostOne:
		if count, second := countIn(m.cat, children); count > 1 {
			return RejectFor(second, "expected at most one child that is %s, found %d", m.cat.Name(), count)
		}
	case KindNoDescendant:
		if off := firstDescendant(m.matcher, children); off != nil {
			return RejectFor(off, "%s at %s is not allowed as a descendant", Label(off), off.Location())
		}
	case KindRuns:
		return m.checkRuns(children)
	case KindFunc:
		if m.fn == nil {
			return Accept()
		}
		return m.fn(ctx, n)
	case KindExpr:
		return m.checkExpr(n, children)
	default:
		panic(fmt.Sprintf("content model of unknown kind %d", m.kind))
	}
	return Accept()
}

func (m *Model) checkSequence(ctx Context, n Node, children []Node) Verdict {
	if len(children) != len(m.subs) {
		return Reject("expected %d children, found %d", len(m.subs), len(children))
	}
	for i, sub := range m.subs {
		if v := sub.Check(ctx, n, children[i:i+1]); !v.OK {
			if v.Offender == nil {
				v.Offender = children[i]
			}
			v.Note = fmt.Sprintf("child #%d: %s", i+1, v.Note)
			return v
		}
	}
	return Accept()
}

// checkChoice evaluates every alternative, so the outcome does not depend
// on the order of alternatives.
func (m *Model) checkChoice(ctx Context, n Node, children []Node) Verdict {
	accepted := false
	for _, sub := range m.subs {
		if v := sub.Check(ctx, n, children); v.OK {
			accepted = true
		}
	}
	if accepted {
		return Accept()
	}
	return Reject("none of %d alternatives matched", len(m.subs))
}

func checkAll(matcher Matcher, children []Node) Verdict {
	for _, ch := range children {
		if !matcher.Matches(ch) {
			return RejectFor(ch, "%s is not %s", Label(ch), matcher)
		}
	}
	return Accept()
}

// countIn counts the children belonging to c and returns the second one
// found, if any.
func countIn(c *category.Category, children []Node) (int, Node) {
	var count int
	var second Node
	for _, ch := range children {
		if ch.Categories().Has(c) {
			count++
			if count == 2 {
				second = ch
			}
		}
	}
	return count, second
}

// firstDescendant searches depth-first, in document order, starting with
// the children as passed to Check.
func firstDescendant(matcher Matcher, children []Node) Node {
	for _, ch := range children {
		if matcher.Matches(ch) {
			return ch
		}
		if off := DescendantWith(ch, matcher); off != nil {
			return off
		}
	}
	return nil
}

// --- Describing ------------------------------------------------------------

// Describe returns an explanation of what m expects.
func (m *Model) Describe() Expectation {
	switch m.kind {
	case KindNothing:
		return Leaf("no content")
	case KindTrivial, KindUnverified:
		return Leaf("anything")
	case KindNoChildElements:
		return Leaf("text only, no child elements")
	case KindExactlyOneOfCategory:
		return Expectation{Text: m.cat.Name(), Ref: m.cat.Ref()}
	case KindSequence:
		return Expectation{Join: JoinFollowedBy, Items: describeAll(m.subs)}
	case KindChoice:
		return Expectation{Text: "one of the following", Join: JoinOr, Items: describeAll(m.subs)}
	case KindZeroOrMore:
		return Leaf("zero or more " + m.matcher.String())
	case KindOneOrMore:
		return Leaf("one or more " + m.matcher.String())
	case KindAnd:
		return Expectation{Text: "all of the following", Join: JoinAnd, Items: describeAll(m.subs)}
	case KindContainsExactlyOne:
		return Expectation{Text: "exactly one " + m.cat.Name(), Ref: m.cat.Ref()}
	case KindContainsAtMostOne:
		return Expectation{Text: "at most one " + m.cat.Name(), Ref: m.cat.Ref()}
	case KindAllChildrenPass:
		return Leaf("only " + m.matcher.String())
	case KindNoDescendant:
		if m.message != "" {
			return Leaf(m.message)
		}
		return Leaf("no descendant that is " + m.matcher.String())
	case KindRuns:
		return m.describeRuns()
	case KindFunc, KindExpr:
		return Leaf(m.desc)
	}
	return Leaf("<unknown content model>")
}

func describeAll(ms []*Model) []Expectation {
	items := make([]Expectation, len(ms))
	for i, m := range ms {
		items[i] = m.Describe()
	}
	return items
}
