/*
Package expand implements a minimal cooperative expansion engine for markup
generators.

Generators build unevaluated expressions (type Expr) which an Evaluator
expands into text. Evaluation happens on a single logical thread, driven by
a FIFO queue of jobs. Sub-expressions of a sequence may finish in any order,
e.g. when some of them have to wait for nested work (see Delay), but the
output of a sequence is always assembled in declaration order.

Every expression is evaluated in an environment (type Env) carrying

  - its position, a tree.Marker reflecting declaration order: the i-th item
    of a sequence at position p is at position p.i
  - scoped state, established by With and visible to every expression
    nested inside

Defer attaches a continuation to an expression; the continuation runs once
the expression is fully resolved and produces the expression to continue
with. A continuation may return an error, which aborts the evaluation.

	e := expand.Seq(
	    expand.Text("<p>"),
	    expand.Delay(3, expand.Text("slow")),
	    expand.Text("</p>"),
	)
	out, err := expand.NewEvaluator().Run(e)   // "<p>slow</p>"

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expand

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.expand'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.expand")
}
