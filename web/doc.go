/*
Package web exposes parse, unparse, transform and execute operations as a
small JSON-over-HTTP application.

This is glue code over the library packages, not a designed protocol: every
endpoint decodes a JSON request, calls into syntax / rewrite / inspect /
sandbox, and answers with a JSON envelope

    { "success": true,  … }
    { "success": false, "error": "…" }

Parse results are cached in an LRU keyed by a hash of the request source.
Snippet execution can additionally be followed line-by-line over a
websocket.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package web

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.web'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.web")
}
