/*
Package report is the bridge between content-model verification and the
logging and configuration subsystem.

Every violation is reported at a severity which is resolved from
configuration. Resolution walks a key chain, from the most specific key to
the least specific one:

	<prefix>.verify.rule.<rule>
	<prefix>.verify.tag.<tag>
	<prefix>.verify

The first key which is set wins. Values are severity names (off, debug,
info, warning, error). A chain without any set key is a misconfiguration of
the tool itself, not a content error: the public path (Report) falls back to
warning, the engine path (ReportStrict) fails.

A report is traced with key 'contentmodel.report' and rendered by a
Formatter into a fragment which callers place inline, next to the markup
of the offending element. The first report for each key chain carries a
hint on how to change its severity; which chains have been explained is
kept in an Explained set injected into the Reporter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package report

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.report'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.report")
}
