package model

import (
	"fmt"
	"strings"

	"github.com/npillmayer/contentmodel/category"
)

// Node is the read-only view of a tracking node which rules inspect.
//
// Children returns the node's children in document order. For the node
// under test the children are passed to Check explicitly; for descendants
// they are already finalized and sorted.
type Node interface {
	Tag() string                   // tag name, "" for text
	IsElement() bool               // false for text nodes
	Text() string                  // text content of text nodes
	Categories() category.Set      // categories the node belongs to
	Attributes() map[string]string // evaluated attribute values, read only
	Children() []Node              // finalized children, in document order
	Parent() Node                  // nil at the document root
	Location() string              // source location for diagnostics
}

// Searcher is implemented by nodes which can search their ancestors and
// descendants directly, e.g. nodes backed by a tracking tree. Rules use it
// when available and walk Parent and Children otherwise.
type Searcher interface {
	// AncestorWith returns the nearest ancestor matched by m, or nil.
	AncestorWith(m Matcher) Node
	// DescendantWith returns the first descendant in document order matched
	// by m, or nil. The node itself is not included.
	DescendantWith(m Matcher) Node
	// Ancestors returns the ancestors from the parent up to the root.
	Ancestors() []Node
}

// AncestorWith returns the nearest ancestor of n matched by m, or nil.
func AncestorWith(n Node, m Matcher) Node {
	if s, ok := n.(Searcher); ok {
		return s.AncestorWith(m)
	}
	for anc := n.Parent(); anc != nil; anc = anc.Parent() {
		if m.Matches(anc) {
			return anc
		}
	}
	return nil
}

// Ancestors returns the ancestors of n from its parent up to the root.
func Ancestors(n Node) []Node {
	if s, ok := n.(Searcher); ok {
		return s.Ancestors()
	}
	var chain []Node
	for anc := n.Parent(); anc != nil; anc = anc.Parent() {
		chain = append(chain, anc)
	}
	return chain
}

// DescendantWith returns the first descendant of n in document order
// matched by m, or nil.
func DescendantWith(n Node, m Matcher) Node {
	if s, ok := n.(Searcher); ok {
		return s.DescendantWith(m)
	}
	return firstDescendant(m, n.Children())
}

// Context gives custom rules access to the scoped evaluation state which
// was active when a node was opened.
type Context interface {
	Lookup(key interface{}) (interface{}, bool)
}

// NoContext is an empty Context.
var NoContext Context = noContext{}

type noContext struct{}

func (noContext) Lookup(interface{}) (interface{}, bool) { return nil, false }

// Attr returns the value of attribute key of n.
func Attr(n Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attributes()[key]
	return v, ok
}

// Label returns a short display label for a node: "<tag>" for elements
// and "text" for text nodes.
func Label(n Node) string {
	if n == nil {
		return "<nil>"
	}
	if !n.IsElement() {
		return "text"
	}
	return "<" + n.Tag() + ">"
}

// --- Verdicts --------------------------------------------------------------

// Verdict is the result of checking a rule.
type Verdict struct {
	OK       bool
	Offender Node   // child, descendant or ancestor responsible for a failure
	Note     string // short explanation of a failure
}

// Accept is the verdict of a satisfied rule.
func Accept() Verdict {
	return Verdict{OK: true}
}

// Reject is the verdict of a failed rule.
func Reject(note string, args ...interface{}) Verdict {
	return Verdict{Note: fmt.Sprintf(note, args...)}
}

// RejectFor is the verdict of a failed rule with an identified offender.
func RejectFor(offender Node, note string, args ...interface{}) Verdict {
	return Verdict{Offender: offender, Note: fmt.Sprintf(note, args...)}
}

// --- Matchers --------------------------------------------------------------

// Matcher is a predicate over a single node. The zero Matcher matches
// nothing.
type Matcher struct {
	desc  string
	match func(Node) bool
}

// MatchFunc creates a matcher from a function. desc describes what the
// matcher accepts, e.g. "a table row".
func MatchFunc(desc string, f func(Node) bool) Matcher {
	return Matcher{desc: desc, match: f}
}

// Matches applies m to n.
func (m Matcher) Matches(n Node) bool {
	if m.match == nil || n == nil {
		return false
	}
	return m.match(n)
}

// IsZero is true for the zero Matcher.
func (m Matcher) IsZero() bool {
	return m.match == nil
}

func (m Matcher) String() string {
	if m.match == nil {
		return "nothing"
	}
	return m.desc
}

// InCategory matches nodes belonging to category c (by identity).
func InCategory(c *category.Category) Matcher {
	return Matcher{
		desc: c.Name(),
		match: func(n Node) bool {
			return n.Categories().Has(c)
		},
	}
}

// IsTag matches elements with one of the given tag names.
func IsTag(tags ...string) Matcher {
	return Matcher{
		desc: orList(tags),
		match: func(n Node) bool {
			if !n.IsElement() {
				return false
			}
			for _, t := range tags {
				if strings.EqualFold(n.Tag(), t) {
					return true
				}
			}
			return false
		},
	}
}

// IsText matches text nodes.
func IsText() Matcher {
	return Matcher{
		desc:  "text",
		match: func(n Node) bool { return !n.IsElement() },
	}
}

// IsElement matches element nodes.
func IsElement() Matcher {
	return Matcher{
		desc:  "an element",
		match: func(n Node) bool { return n.IsElement() },
	}
}

// HasAttr matches elements with attribute key set.
func HasAttr(key string) Matcher {
	return Matcher{
		desc: "an element with attribute " + key,
		match: func(n Node) bool {
			_, ok := Attr(n, key)
			return ok && n.IsElement()
		},
	}
}

// AnyOf matches nodes matched by at least one of ms.
func AnyOf(ms ...Matcher) Matcher {
	descs := make([]string, len(ms))
	for i, m := range ms {
		descs[i] = m.String()
	}
	return Matcher{
		desc: orList(descs),
		match: func(n Node) bool {
			for _, m := range ms {
				if m.Matches(n) {
					return true
				}
			}
			return false
		},
	}
}

// Not negates a matcher.
func Not(m Matcher) Matcher {
	return Matcher{
		desc:  "not " + m.String(),
		match: func(n Node) bool { return !m.Matches(n) },
	}
}

func orList(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
