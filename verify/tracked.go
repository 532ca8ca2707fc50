package verify

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/npillmayer/contentmodel/category"
	"github.com/npillmayer/contentmodel/model"
	"github.com/npillmayer/contentmodel/tree"
)

// Descriptor declares an element type: its tag, the content model of its
// children, the categories it belongs to and a specification reference.
// Descriptors are immutable and usually shared by all elements of a tag.
type Descriptor struct {
	Tag        string
	Model      *model.Model
	Categories category.Set
	Ref        string
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("<%s> %s", d.Tag, d.Model)
}

// Tracked is the payload of a tracking node.
type Tracked struct {
	Desc     *Descriptor       // nil for text
	Text     string            // text of text nodes
	Attrs    map[string]string // attribute snapshot
	Location string            // source location of the generator call
	cats     category.Set
	ctx      model.Context // scoped state when the node was opened
}

// IsElement is false for text nodes.
func (t *Tracked) IsElement() bool {
	return t.Desc != nil
}

// Tag returns the tag name, or "" for text.
func (t *Tracked) Tag() string {
	if t.Desc == nil {
		return ""
	}
	return t.Desc.Tag
}

func (t *Tracked) String() string {
	if t.Desc == nil {
		return fmt.Sprintf("%q", t.Text)
	}
	return "<" + t.Desc.Tag + ">"
}

func label(t *Tracked) (string, bool) {
	if t.Desc == nil {
		return t.Text, true
	}
	return t.Desc.Tag, false
}

// Caller returns the source location of a caller as "file.go:line".
// skip 0 is the function calling Caller.
func Caller(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// --- Node views ------------------------------------------------------------

// nodeView exposes a tracking node to content models.
type nodeView struct {
	t  *tree.Tree[*Tracked]
	id tree.NodeID
}

var _ model.Node = nodeView{}
var _ model.Searcher = nodeView{}

func (n nodeView) tracked() *Tracked { return n.t.Payload(n.id) }

func (n nodeView) Tag() string                   { return n.tracked().Tag() }
func (n nodeView) IsElement() bool               { return n.tracked().IsElement() }
func (n nodeView) Text() string                  { return n.tracked().Text }
func (n nodeView) Categories() category.Set      { return n.tracked().cats }
func (n nodeView) Attributes() map[string]string { return n.tracked().Attrs }
func (n nodeView) Location() string              { return n.tracked().Location }

func (n nodeView) Children() []model.Node {
	return views(n.t, n.t.Children(n.id))
}

func (n nodeView) Parent() model.Node {
	p := n.t.Parent(n.id)
	if p == tree.None {
		return nil
	}
	return nodeView{t: n.t, id: p}
}

// AncestorWith is part of interface model.Searcher.
func (n nodeView) AncestorWith(m model.Matcher) model.Node {
	anc, err := n.t.AncestorWith(n.id, matching(m))
	if err != nil || anc == tree.None {
		return nil
	}
	return nodeView{t: n.t, id: anc}
}

// DescendantWith is part of interface model.Searcher.
func (n nodeView) DescendantWith(m model.Matcher) model.Node {
	d, err := n.t.DescendantWith(n.id, matching(m))
	if err != nil || d == tree.None {
		return nil
	}
	return nodeView{t: n.t, id: d}
}

// Ancestors is part of interface model.Searcher.
func (n nodeView) Ancestors() []model.Node {
	return views(n.t, n.t.Ancestors(n.id))
}

// matching turns a matcher into a tree predicate.
func matching(m model.Matcher) tree.Predicate[*Tracked] {
	return func(t *tree.Tree[*Tracked], test tree.NodeID, _ tree.NodeID) bool {
		return m.Matches(nodeView{t: t, id: test})
	}
}

func views(t *tree.Tree[*Tracked], ids []tree.NodeID) []model.Node {
	vs := make([]model.Node, len(ids))
	for i, id := range ids {
		vs[i] = nodeView{t: t, id: id}
	}
	return vs
}
