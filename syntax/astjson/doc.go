/*
Package astjson converts Go syntax trees to and from a JSON representation.

A tree node is encoded as an object

    { "node_type": "FuncDecl", "line": 3, "col": 1, "Name": …, "Body": … }

with child nodes recursing, node lists becoming arrays and scalar fields
(identifier names, literal values, operator tokens) encoded by value.
Decoding reverses the mapping through a registry of node-type names.

Positions do not survive the round trip: decoded trees carry no position
information and rely on the printer's layout rules when regenerated.
Comments are not encoded, for the same reason.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package astjson

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.syntax")
}
