/*
Package elements is a catalog of verified HTML element generators.

Every generator renders an element (start tag, children, end tag) and wraps
it into a verify.Verifier, so that the children of each element are checked
against the element's content model while the document is generated:

	b := elements.New(verify.New(nil))
	doc := b.HTML(nil,
	    b.Head(nil, b.Title(nil, b.Text("Hello"))),
	    b.Body(nil, b.P(nil, b.Text("Hello, world"))),
	)
	out, err := b.Run(doc)

Content models follow the HTML living standard, as far as they can be
expressed by package model. Each tag has its own rule; rules are not
shared between tags, even where they currently look alike.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package elements

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.elements'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.elements")
}
