/*
Package tree implements the shadow tree used for content-model verification.

Nodes live in an arena (type Tree) and refer to each other by index
(type NodeID). A node knows its parent from the moment it is created, but a
parent learns about a child only when the child registers itself, which
happens once the child's own subtree has been evaluated. Children therefore
arrive in completion order, which may differ from declaration order.

Every node carries an evaluation-order marker (type Marker), captured when
the node is opened. SortChildren re-sorts a parent's collected children by
marker, restoring true document order:

	t := tree.New[string]()
	root := t.NewNode("html", tree.None, tree.Marker{})
	body := t.NewNode("body", root, tree.Marker{1})
	head := t.NewNode("head", root, tree.Marker{0})
	t.Register(body)          // body finished first
	t.Register(head)
	t.SortChildren(root)      // children are now [head, body]

Navigation helpers (AncestorWith, DescendantWith, TopDown) walk the arena
using the parent back-references and the (sorted) child lists.

A Tree is not safe for concurrent use. It is meant to be owned by a single
evaluation pass on a single logical thread.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.tree'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("contentmodel.tree: "+msg, msgargs...)
		panic(msg)
	}
}
