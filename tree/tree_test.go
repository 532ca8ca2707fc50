package tree

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerCompare(t *testing.T) {
	var cases = []struct {
		a, b Marker
		cmp  int
	}{
		{Marker{}, Marker{}, 0},
		{Marker{0}, Marker{1}, -1},
		{Marker{1, 0}, Marker{0, 5}, 1},
		{Marker{2}, Marker{2, 0}, -1},
		{Marker{3, 1, 4}, Marker{3, 1, 4}, 0},
		{Marker{10}, Marker{9, 99}, 1},
	}
	for i, c := range cases {
		if got := c.a.Compare(c.b); got != c.cmp {
			t.Errorf("case %d: expected %s <=> %s to be %d, is %d", i, c.a, c.b, c.cmp, got)
		}
	}
}

func TestMarkerChildDoesNotAlias(t *testing.T) {
	m := make(Marker, 1, 8)
	a := m.Child(0)
	b := m.Child(1)
	if a[1] != 0 || b[1] != 1 {
		t.Errorf("expected child markers to be independent, are %s and %s", a, b)
	}
	assert.Equal(t, "0.1", b.String())
	assert.Equal(t, "/", Marker{}.String())
}

func TestRegisterAndSortRestoresDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.tree")
	defer teardown()
	//
	tr := New[string]()
	root := tr.NewNode("p", None, Marker{})
	x := tr.NewNode("x", root, Marker{0})
	y := tr.NewNode("y", root, Marker{1})
	z := tr.NewNode("z", root, Marker{2})
	for _, id := range []NodeID{z, x, y} { // completion order
		require.NoError(t, tr.Register(id))
	}
	if tr.IsSorted(root) {
		t.Error("expected children of root to be unsorted after out-of-order registration")
	}
	children := tr.SortChildren(root)
	assert.Equal(t, []NodeID{x, y, z}, children)
	assert.True(t, tr.IsSorted(root))
	assert.Equal(t, 1, tr.IndexOfChild(root, y))
}

func TestRegisterOnce(t *testing.T) {
	tr := New[int]()
	root := tr.NewNode(0, None, nil)
	ch := tr.NewNode(1, root, Marker{0})
	require.NoError(t, tr.Register(ch))
	err := tr.Register(ch)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("expected second registration to fail, error is %v", err)
	}
	assert.Equal(t, 1, tr.ChildCount(root))
	assert.NoError(t, tr.Register(root), "root registers nowhere, without error")
	assert.ErrorIs(t, tr.Register(NodeID(42)), ErrNoSuchNode)
}

func TestUnregisteredChildIsInvisible(t *testing.T) {
	tr := New[string]()
	root := tr.NewNode("root", None, nil)
	ch := tr.NewNode("child", root, Marker{0})
	if tr.ChildCount(root) != 0 {
		t.Error("expected parent not to know unregistered child")
	}
	if tr.Parent(ch) != root {
		t.Error("expected child to know its parent before registration")
	}
}

func TestNavigation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "contentmodel.tree")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	tr, ids := createTreeForTest()
	anc := tr.Ancestors(ids["em"])
	assert.Equal(t, []NodeID{ids["p"], ids["body"], ids["html"]}, anc)
	//
	isTag := func(tag string) Predicate[string] {
		return func(t *Tree[string], test NodeID, _ NodeID) bool {
			return t.Payload(test) == tag
		}
	}
	body, err := tr.AncestorWith(ids["em"], isTag("body"))
	require.NoError(t, err)
	assert.Equal(t, ids["body"], body)
	none, err := tr.AncestorWith(ids["em"], isTag("table"))
	require.NoError(t, err)
	assert.Equal(t, None, none)
	//
	em, err := tr.DescendantWith(ids["html"], isTag("em"))
	require.NoError(t, err)
	assert.Equal(t, ids["em"], em)
	none, err = tr.DescendantWith(ids["p"], isTag("div"))
	require.NoError(t, err)
	assert.Equal(t, None, none)
	_, err = tr.DescendantWith(ids["html"], nil)
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestTopDown(t *testing.T) {
	tr, ids := createTreeForTest()
	var visited []string
	var positions []int
	err := tr.TopDown(ids["html"], func(n NodeID, parent NodeID, position int) error {
		visited = append(visited, tr.Payload(n))
		positions = append(positions, position)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "head", "title", "body", "p", "em", "div"}, visited)
	assert.Equal(t, []int{-1, 0, 0, 1, 0, 0, 1}, positions)
	//
	stop := errors.New("stop")
	count := 0
	err = tr.TopDown(ids["html"], func(n NodeID, _ NodeID, _ int) error {
		count++
		if tr.Payload(n) == "body" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 4, count)
}

// createTreeForTest builds
//
//	html
//	├── head
//	│   └── title
//	└── body
//	    ├── p
//	    │   └── em
//	    └── div
//
// registering nodes in reverse order and sorting afterwards.
func createTreeForTest() (*Tree[string], map[string]NodeID) {
	tr := New[string]()
	ids := make(map[string]NodeID)
	ids["html"] = tr.NewNode("html", None, Marker{})
	ids["head"] = tr.NewNode("head", ids["html"], Marker{0})
	ids["title"] = tr.NewNode("title", ids["head"], Marker{0, 0})
	ids["body"] = tr.NewNode("body", ids["html"], Marker{1})
	ids["p"] = tr.NewNode("p", ids["body"], Marker{1, 0})
	ids["em"] = tr.NewNode("em", ids["p"], Marker{1, 0, 0})
	ids["div"] = tr.NewNode("div", ids["body"], Marker{1, 1})
	for _, n := range []string{"div", "em", "p", "body", "title", "head"} {
		if err := tr.Register(ids[n]); err != nil {
			panic(err)
		}
	}
	for _, n := range []string{"html", "head", "body", "p"} {
		tr.SortChildren(ids[n])
	}
	return tr, ids
}
