package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
)

// ErrInvalidFilter is returned if a walk is called without a predicate or action.
var ErrInvalidFilter = errors.New("predicate or action is invalid")

// Predicate is a function type to match against nodes of a tree.
// It is used as an argument for various navigation functions.
// test is the node under test, origin is the node the search started from.
type Predicate[T any] func(t *Tree[T], test NodeID, origin NodeID) bool

// Ancestors returns the chain of ancestors of a node, starting with its
// parent and ending with the root. The start node is not included.
func (t *Tree[T]) Ancestors(id NodeID) []NodeID {
	var chain []NodeID
	for anc := t.Parent(id); anc != None; anc = t.Parent(anc) {
		chain = append(chain, anc)
	}
	return chain
}

// AncestorWith finds the nearest ancestor matching the given predicate.
// The search does not include the start node.
func (t *Tree[T]) AncestorWith(id NodeID, predicate Predicate[T]) (NodeID, error) {
	if predicate == nil {
		return None, ErrInvalidFilter
	}
	for anc := t.Parent(id); anc != None; anc = t.Parent(anc) {
		if predicate(t, anc, id) {
			return anc, nil
		}
	}
	return None, nil // no matching ancestor found, not an error
}

// DescendantWith finds the first descendant in document order matching
// a predicate. The search does not include the start node. Only children
// which have registered with their parents are visited.
func (t *Tree[T]) DescendantWith(id NodeID, predicate Predicate[T]) (NodeID, error) {
	if predicate == nil {
		return None, ErrInvalidFilter
	}
	var found = None
	err := t.walk(id, id, false, func(n NodeID, _ NodeID, _ int) error {
		if predicate(t, n, id) {
			found = n
			return errStopWalk
		}
		return nil
	})
	if err == errStopWalk {
		err = nil
	}
	return found, err
}

// Action is a function type to operate on tree nodes during a traversal.
type Action[T any] func(n NodeID, parent NodeID, position int) error

// TopDown traverses a tree starting at (and including) node id.
// The traversal guarantees that parents are always processed before
// their children, and siblings in the order of their child lists.
//
// If the action function returns an error for a node, the traversal
// stops and the error is returned.
func (t *Tree[T]) TopDown(id NodeID, action Action[T]) error {
	if action == nil {
		return ErrInvalidFilter
	}
	if t.Node(id) == nil {
		return ErrNoSuchNode
	}
	return t.walk(id, t.Parent(id), true, action)
}

var errStopWalk = errors.New("stop walk")

func (t *Tree[T]) walk(id NodeID, parent NodeID, includeSelf bool, action Action[T]) error {
	if includeSelf {
		pos := t.IndexOfChild(parent, id)
		if err := action(id, parent, pos); err != nil {
			return err
		}
	}
	n := t.Node(id)
	if n == nil {
		return nil
	}
	for pos, ch := range n.children {
		if err := action(ch, id, pos); err != nil {
			return err
		}
		if err := t.walk(ch, id, false, action); err != nil {
			return err
		}
	}
	return nil
}
