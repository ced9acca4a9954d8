/*
Package main starts an interactive CLI ("A.REPL") for playing with Go
syntax trees: load or type a snippet, dump it as a tree, rewrite it with
the registered rules, search it with selectors, and run it in the sandbox.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'arbor.repl'.
func tracer() tracing.Trace {
	return tracing.Select("arbor.repl")
}
