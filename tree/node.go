package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
)

// ErrAlreadyRegistered is returned if a node tries to register with its
// parent a second time.
var ErrAlreadyRegistered = errors.New("node is already registered with its parent")

// ErrNoSuchNode is returned for node IDs outside of the arena.
var ErrNoSuchNode = errors.New("no such node in tree")

// NodeID addresses a node within a Tree.
type NodeID int32

// None is the NodeID of a non-existing node, e.g. the parent of a root.
const None NodeID = -1

// Node is the building block of a tracking tree. Each node carries a
// payload of type parameter T.
type Node[T any] struct {
	Payload    T        // nodes may carry a payload of arbitrary type
	Rank       Marker   // evaluation-order marker, used for preserving sequence
	parent     NodeID   // lookup only; the parent does not own this node
	children   []NodeID // appended to by children, in completion order
	registered bool     // has this node registered with its parent?
	sorted     bool     // have the children been brought into document order?
}

// Parent returns the parent's ID or None.
func (node *Node[T]) Parent() NodeID {
	return node.parent
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v @%s)", len(node.children), node.Payload, node.Rank)
}

// Tree is an arena of nodes. The zero value is an empty tree ready to use.
type Tree[T any] struct {
	nodes []*Node[T]
}

// New creates an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// NewNode creates a new node with a given payload. The node is connected
// to parent (lookup only) but will not appear in the parent's list of
// children before it calls Register. parent may be None for root nodes.
func (t *Tree[T]) NewNode(payload T, parent NodeID, rank Marker) NodeID {
	assertThat(parent == None || t.valid(parent), "parent %d is not a node of this tree", parent)
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node[T]{
		Payload: payload,
		Rank:    rank.Clone(),
		parent:  parent,
	})
	return id
}

// Len returns the number of nodes in the arena.
func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

func (t *Tree[T]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node for an ID, or nil if id is not part of t.
func (t *Tree[T]) Node(id NodeID) *Node[T] {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id]
}

// Payload returns the payload of node id. It panics for invalid IDs.
func (t *Tree[T]) Payload(id NodeID) T {
	n := t.Node(id)
	assertThat(n != nil, "no node with ID %d", id)
	return n.Payload
}

// Parent returns the parent of a node, or None for the root and for
// invalid IDs.
func (t *Tree[T]) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.parent
	}
	return None
}

// Register appends node id to its parent's list of children. A node may
// register at most once. A root node has nowhere to register to; this is
// not an error.
func (t *Tree[T]) Register(id NodeID) error {
	n := t.Node(id)
	if n == nil {
		return ErrNoSuchNode
	}
	if n.registered {
		return fmt.Errorf("node %d: %w", id, ErrAlreadyRegistered)
	}
	n.registered = true
	if n.parent == None {
		return nil
	}
	p := t.nodes[n.parent]
	p.children = append(p.children, id)
	p.sorted = false
	tracer().Debugf("node %d registered with parent %d", id, n.parent)
	return nil
}

// IsRegistered is true if node id has registered with its parent.
func (t *Tree[T]) IsRegistered(id NodeID) bool {
	n := t.Node(id)
	return n != nil && n.registered
}

// ChildCount returns the number of children registered so far.
func (t *Tree[T]) ChildCount(id NodeID) int {
	if n := t.Node(id); n != nil {
		return len(n.children)
	}
	return 0
}

// Children returns a copy of the list of children of a node. The list is
// in document order only after SortChildren has been called.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil || len(n.children) == 0 {
		return nil
	}
	children := make([]NodeID, len(n.children))
	copy(children, n.children)
	return children
}

// Child returns the i-th child of a node.
func (t *Tree[T]) Child(id NodeID, i int) (NodeID, bool) {
	n := t.Node(id)
	if n == nil || i < 0 || i >= len(n.children) {
		return None, false
	}
	return n.children[i], true
}

// IndexOfChild returns the index of a child within the list of children
// of its parent, or -1.
func (t *Tree[T]) IndexOfChild(id NodeID, ch NodeID) int {
	if n := t.Node(id); n != nil {
		for i, c := range n.children {
			if c == ch {
				return i
			}
		}
	}
	return -1
}

// IsSorted is true if the children of node id are known to be in
// document order.
func (t *Tree[T]) IsSorted(id NodeID) bool {
	n := t.Node(id)
	return n != nil && (n.sorted || len(n.children) < 2)
}
