/*
Package arbor is a toolbox for inspecting and rewriting Go source trees.

Arbor collects a set of small, focussed tools around the standard library's
syntax-tree machinery (go/parser, go/ast, go/printer). Package structure is
as follows:

■ syntax: Package syntax wraps parsing and regeneration of source text, plus
a structural tree dump. Sub-package astjson converts syntax trees to and from
a JSON representation.

■ rewrite: Package rewrite implements named tree-rewriting rules (replace
constants, inject entry logging, rename functions, guard risky calls, …),
applied while walking the tree. Sub-package selector provides a small
node-selector language.

■ inspect: Package inspect implements read-only analyses: a per-function
variable-usage index with unused-variable reporting, a Markdown documentation
generator, and structure extraction for tree-rendering clients.

■ sandbox: Package sandbox runs source snippets in a subprocess with a
deadline and output limits.

■ web: Package web exposes parse/unparse/transform/execute operations as a
small JSON-over-HTTP application.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arbor
