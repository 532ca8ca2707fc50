package model

import (
	"strings"

	"github.com/xlab/treeprint"
)

// Connectives joining the items of a composite Expectation.
const (
	JoinOr         = "or"
	JoinAnd        = "and"
	JoinFollowedBy = "followed by"
)

// Expectation is a renderable explanation of what a rule expects.
// Composite expectations group items under a connective.
type Expectation struct {
	Text  string        // summary; for leafs the whole explanation
	Join  string        // connective for Items
	Items []Expectation // nested explanations
	Note  string        // trailing remark, e.g. about ignored elements
	Ref   string        // specification reference, if any
}

// Leaf creates an expectation without nested items.
func Leaf(text string) Expectation {
	return Expectation{Text: text}
}

// String renders an expectation on a single line, e.g.
// "head followed by body" or "one of the following: A, or B".
func (e Expectation) String() string {
	var b strings.Builder
	if len(e.Items) == 0 {
		b.WriteString(e.Text)
	} else {
		parts := make([]string, len(e.Items))
		for i, item := range e.Items {
			s := item.String()
			if len(item.Items) > 1 {
				s = "(" + s + ")"
			}
			parts[i] = s
		}
		if e.Join == JoinFollowedBy {
			if e.Text != "" {
				b.WriteString(e.Text)
				b.WriteString(": ")
			}
			b.WriteString(strings.Join(parts, " followed by "))
		} else {
			b.WriteString(e.Text)
			b.WriteString(": ")
			b.WriteString(strings.Join(parts, ", "+e.Join+" "))
		}
	}
	if e.Note != "" {
		b.WriteString(" (")
		b.WriteString(e.Note)
		b.WriteString(")")
	}
	return b.String()
}

// Render renders an expectation as a grouped list. Leaf expectations
// render as their one-line form.
func (e Expectation) Render() string {
	if len(e.Items) == 0 {
		return e.String()
	}
	root := treeprint.NewWithRoot(e.header())
	for _, item := range e.Items {
		addExpectation(root, item)
	}
	return strings.TrimRight(root.String(), "\n")
}

func (e Expectation) header() string {
	h := e.Text
	if h == "" {
		switch e.Join {
		case JoinFollowedBy:
			h = "in this order"
		case JoinOr:
			h = "one of the following"
		default:
			h = "all of the following"
		}
	}
	if e.Note != "" {
		h += " (" + e.Note + ")"
	}
	return h
}

func addExpectation(t treeprint.Tree, e Expectation) {
	if len(e.Items) == 0 {
		t.AddNode(e.String())
		return
	}
	branch := t.AddBranch(e.header())
	for _, item := range e.Items {
		addExpectation(branch, item)
	}
}
