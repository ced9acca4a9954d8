package syntax

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"go/ast"
	"io"
	"strings"
)

// Dump writes an indented structural view of the tree to w: one line per
// node, type name first, then position and, for leaves, the lexical text.
// This is the inspection tool used throughout the examples to make the
// shape of a tree visible.
func (t *Tree) Dump(w io.Writer) {
	if t == nil || t.Root == nil {
		fmt.Fprintln(w, "-")
		return
	}
	depth := 0
	ast.Inspect(t.Root, func(n ast.Node) bool {
		if n == nil {
			depth--
			return true
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", depth), t.describe(n))
		depth++
		return true
	})
}

// DumpString is Dump into a string.
func (t *Tree) DumpString() string {
	var sb strings.Builder
	t.Dump(&sb)
	return sb.String()
}

// NodeType returns the bare type name of a tree node, i.e. "FuncDecl" for
// an *ast.FuncDecl.
func NodeType(n ast.Node) string {
	if n == nil {
		return "-"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func (t *Tree) describe(n ast.Node) string {
	pos := t.Fset.Position(n.Pos())
	switch x := n.(type) {
	case *ast.Ident:
		return fmt.Sprintf("Ident %q <%d:%d>", x.Name, pos.Line, pos.Column)
	case *ast.BasicLit:
		return fmt.Sprintf("BasicLit %s %s <%d:%d>", x.Kind, x.Value, pos.Line, pos.Column)
	case *ast.FuncDecl:
		return fmt.Sprintf("FuncDecl %q <%d:%d>", x.Name.Name, pos.Line, pos.Column)
	case *ast.File:
		return fmt.Sprintf("File %q", x.Name.Name)
	default:
		return fmt.Sprintf("%s <%d:%d>", NodeType(n), pos.Line, pos.Column)
	}
}
