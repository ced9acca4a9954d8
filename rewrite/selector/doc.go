/*
Package selector implements a small node-selector language.

Selectors address tree nodes by class and name, e.g.

    func:calculateTotal
    call:json.Unmarshal
    kind:ReturnStmt
    ident:total

Several terms may be joined by ',' and match alternatively. Classes are

    func   — a function declaration with the given name
    call   — a call whose callee renders as the given (qualified) name
    kind   — any node of the given type name
    ident  — an identifier with the given name

The selector scanner is built with lexmachine. Package selector is very
opinionated on how to do the setup of lexmachine; if the conventions here
do not fit, write your own wrapper code around the lexmachine scanner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.rewrite")
}
