package tree

import (
	"sort"
	"strconv"
	"strings"
)

// Marker is an evaluation-order marker: the path of sibling indices from
// the root of an evaluation down to the point where a node was opened.
// Markers compare lexicographically, with a prefix sorting before its
// extensions.
type Marker []uint32

// Child returns a new marker for the i-th sub-position of m.
func (m Marker) Child(i int) Marker {
	c := make(Marker, len(m)+1)
	copy(c, m)
	c[len(m)] = uint32(i)
	return c
}

// Clone returns a copy of m which does not share storage with m.
func (m Marker) Clone() Marker {
	if m == nil {
		return nil
	}
	c := make(Marker, len(m))
	copy(c, m)
	return c
}

// Compare returns -1, 0 or +1 depending on whether m sorts before, equal
// to or after other.
func (m Marker) Compare(other Marker) int {
	for i := 0; i < len(m) && i < len(other); i++ {
		if m[i] < other[i] {
			return -1
		} else if m[i] > other[i] {
			return 1
		}
	}
	switch {
	case len(m) < len(other):
		return -1
	case len(m) > len(other):
		return 1
	}
	return 0
}

// Less is a shortcut for m.Compare(other) < 0.
func (m Marker) Less(other Marker) bool {
	return m.Compare(other) < 0
}

func (m Marker) String() string {
	if len(m) == 0 {
		return "/"
	}
	parts := make([]string, len(m))
	for i, n := range m {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return strings.Join(parts, ".")
}

// --------------------------------------------------------------------------------

// a helper struct for ordering children by their markers
type rankedChildren[T any] struct {
	nodes []NodeID
	tree  *Tree[T]
}

func (rc rankedChildren[T]) Len() int { return len(rc.nodes) }
func (rc rankedChildren[T]) Less(i, j int) bool {
	return rc.tree.nodes[rc.nodes[i]].Rank.Less(rc.tree.nodes[rc.nodes[j]].Rank)
}
func (rc rankedChildren[T]) Swap(i, j int) {
	rc.nodes[i], rc.nodes[j] = rc.nodes[j], rc.nodes[i]
}

// SortChildren brings the children of node id into document order, i.e.
// sorts them by their markers, ascending. Children with equal markers keep
// their registration order.
func (t *Tree[T]) SortChildren(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	if !n.sorted && len(n.children) > 1 {
		sort.Stable(rankedChildren[T]{nodes: n.children, tree: t})
	}
	n.sorted = true
	return t.Children(id)
}
