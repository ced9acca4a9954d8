package inspect

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"go/ast"

	"github.com/npillmayer/arbor/syntax"
)

// Node is one tree node of an extracted structure: a stable pre-order ID,
// the node-type name, a short display label and the source line.
type Node struct {
	ID       int    `json:"id"`
	NodeType string `json:"node_type"`
	Label    string `json:"label"`
	Line     int    `json:"line"`
}

// Connection is a parent→child edge between structure nodes.
type Connection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Structure is the flat node/edge view of a tree, for clients that render
// it. IDs are pre-order indices and stable for a given source text.
type Structure struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Extract builds the structure view of a parsed source unit.
func Extract(t *syntax.Tree) *Structure {
	s := &Structure{}
	if t == nil || t.Root == nil {
		return s
	}
	var stack []int
	ast.Inspect(t.Root, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return true
		}
		id := len(s.Nodes)
		line := 0
		if n.Pos().IsValid() {
			line = t.Fset.Position(n.Pos()).Line
		}
		s.Nodes = append(s.Nodes, Node{
			ID:       id,
			NodeType: syntax.NodeType(n),
			Label:    labelFor(n),
			Line:     line,
		})
		if len(stack) > 0 {
			s.Connections = append(s.Connections, Connection{From: stack[len(stack)-1], To: id})
		}
		stack = append(stack, id)
		return true
	})
	tracer().Debugf("extracted structure: %d node(s)", len(s.Nodes))
	return s
}

func labelFor(n ast.Node) string {
	switch x := n.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.BasicLit:
		return x.Value
	case *ast.FuncDecl:
		return "func " + x.Name.Name
	case *ast.File:
		return "package " + x.Name.Name
	}
	return syntax.NodeType(n)
}
