package selector

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"go/ast"

	"github.com/npillmayer/arbor"
	"github.com/npillmayer/arbor/syntax"
)

// Match is a node found by FindAll, together with its location.
type Match struct {
	Node ast.Node
	Loc  arbor.Location
}

// FindAll walks the tree and collects every node the selector matches, in
// source order.
func FindAll(t *syntax.Tree, sel *Selector) []Match {
	if t == nil || t.Root == nil || sel.Empty() {
		return nil
	}
	var found []Match
	ast.Inspect(t.Root, func(n ast.Node) bool {
		if n == nil {
			return true
		}
		if sel.Matches(n) {
			found = append(found, Match{Node: n, Loc: arbor.LocationFor(t.Fset, n.Pos())})
		}
		return true
	})
	return found
}
