/*
Package sandbox runs Go source snippets in a subprocess.

A snippet is completed into a small main module in a temporary directory
and executed with the go tool. Execution is bounded: a deadline from the
caller's context (capped by the configured timeout), an output byte limit,
and a static check rejecting banned imports before anything runs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sandbox

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.sandbox'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.sandbox")
}
