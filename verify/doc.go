/*
Package verify checks generated markup against content models while it is
being generated.

A Verifier wraps the expressions of markup generators. For every element,
it opens a tracking node, lets the element's content evaluate and, once the
content is fully resolved, checks the node's children against the content
model of the element:

	v := verify.New(report.New(report.DefaultLevels(report.DefaultPrefix)))
	p := v.Element(pDescriptor, nil, expand.Seq(
	    expand.Text("<p>"), v.Text("Hello"), expand.Text("</p>"),
	))
	out, err := v.Run(p)

Children register with their parent when their own check is complete,
which may happen in any order. Before checking, a node's children are
sorted by the position at which each child was opened, so rules always see
the children in document order. Checks happen bottom-up; reports appear in
the output in front of the markup of the offending element.

Content violations never fail an evaluation. If the reporting layer is
misconfigured, reports fall back to warnings; with option Strict, the
misconfiguration aborts the evaluation instead (see
report.Reporter.ReportStrict).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package verify

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.verify'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.verify")
}
