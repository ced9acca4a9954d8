/*
Package rewrite implements tree transformers for Go source.

A transformer is a named Rule which is applied while walking the syntax
tree; walking and node splicing are delegated to astutil.Apply. Rules are
registered under wire names (replace_constants, add_logging, …) so that
clients — the web application and the arepl tool — can discover and build
them from parameters.

Rules never mutate anything but the tree handed to them: applying a rule
to a freshly parsed tree is deterministic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rewrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.rewrite")
}
