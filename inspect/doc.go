/*
Package inspect implements read-only analyses over Go syntax trees.

The centerpiece is a two-pass variable-usage index: pass one walks the tree
and records, per function scope, which names are defined and which are used;
pass two analyzes the index, e.g. to report variables that were defined but
never used. The index is deliberately single-level — names defined inside
function literals are attributed to the enclosing declaration — which keeps
the technique at roughly forty lines and is precise enough for inspection
purposes.

The package also contains a Markdown documentation generator for function
signatures and doc comments, and structure extraction for clients that
render trees.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inspect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.inspect'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.inspect")
}
