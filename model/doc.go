/*
Package model implements a small algebra of content-model rules.

A content model constrains the children of an element. Rules are values of
type *Model, built from combinators and checked against the ordered list of
an element's children:

	html := model.Sequence(
	    model.ExactlyOneOfCategory(head),
	    model.ExactlyOneOfCategory(body),
	).Named("html-children")
	verdict := html.Check(ctx, node, children)

Every rule is a pure function of a node and its already finalized children
and descendants. Rules never modify the tree they inspect.

Each rule describes itself (Describe) as a nested Expectation, which renders
as a one-line summary ("head followed by body") or as a grouped list drawn
with treeprint.

Rules refer to nodes through the read-only interface Node. Matchers are
single-node predicates used by cardinality and scanning combinators.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package model

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.model'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.model")
}
