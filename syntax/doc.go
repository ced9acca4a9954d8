/*
Package syntax wraps parsing and regeneration of Go source text.

The parser itself is an opaque collaborator: we delegate to the standard
library's go/parser and regenerate text with go/format. What this package
adds is a uniform Tree type carrying the file set together with the parsed
file, snippet-friendly parsing (bare declarations or statements are wrapped
into a synthetic main package before parsing), syntax validation, and a
structural tree dump for inspection.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.syntax")
}
