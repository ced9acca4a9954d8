/*
Package main starts the arbor web application (arbord).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.web'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.web")
}
