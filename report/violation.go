package report

import (
	"fmt"
	"strings"
	"sync"
)

// Violation records an element whose children failed its content model.
type Violation struct {
	Tag      string    // tag name of the failing element
	Rule     string    // rule name
	Expected string    // one-line expectation, e.g. "head followed by body"
	Rendered string    // expectation as a grouped list
	Note     string    // what went wrong, if known
	Ref      string    // specification reference of the element
	Location string    // source location of the element
	Position string    // evaluation-order marker of the element
	Offender *Offender // node responsible for the failure, if known
	Severity Severity  // resolved severity, set when reported
	Chain    KeyChain  // key chain used for resolution, set when reported
}

// Offender identifies a child, descendant or ancestor responsible for a
// violation.
type Offender struct {
	Tag      string // "" for text
	Location string
}

func (o *Offender) String() string {
	if o == nil {
		return "<none>"
	}
	label := "text"
	if o.Tag != "" {
		label = "<" + o.Tag + ">"
	}
	if o.Location == "" {
		return label
	}
	return label + " at " + o.Location
}

// Message returns a one-line summary of v.
func (v Violation) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s> expects %s", v.Tag, v.Expected)
	if v.Note != "" {
		b.WriteString(": ")
		b.WriteString(v.Note)
	}
	return b.String()
}

func (v Violation) String() string {
	return fmt.Sprintf("%s [%s] at %s", v.Message(), v.Rule, v.Location)
}

// --- Explained chains ------------------------------------------------------

// Explained is the set of key chains for which a severity hint has already
// been shown. A new set is empty. One Explained is usually shared by every
// Reporter of a process; it needs no teardown.
//
// Explained is safe for concurrent use.
type Explained struct {
	sync.Mutex
	seen map[string]struct{}
}

// NewExplained creates an empty set.
func NewExplained() *Explained {
	return &Explained{seen: make(map[string]struct{})}
}

// First marks chain as explained. It returns true if chain has not been
// explained before.
func (e *Explained) First(chain KeyChain) bool {
	key := chain.String()
	e.Lock()
	defer e.Unlock()
	if _, ok := e.seen[key]; ok {
		return false
	}
	e.seen[key] = struct{}{}
	return true
}

// Len returns the number of explained chains.
func (e *Explained) Len() int {
	e.Lock()
	defer e.Unlock()
	return len(e.seen)
}
