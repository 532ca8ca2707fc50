/*
Package category provides identity-unique tokens for markup content categories.

A content category groups element types which share structural privileges,
e.g. "flow content" or "phrasing content". Content-model rules refer to
categories, never to category names: two categories may share a display name
and still be distinct. Single-element categories ("is a head element") are
categories as well and are interned per tag by a Registry.

Categories are created once, are immutable and may be shared freely.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package category

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'contentmodel.category'.
func tracer() tracing.Trace {
	return tracing.Select("contentmodel.category")
}
