package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"go/ast"
	"sort"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/npillmayer/arbor/syntax"
)

// stmtKinds maps the wire names of removable statement kinds to their
// predicates.
var stmtKinds = map[string]func(ast.Stmt) bool{
	"expr":   func(s ast.Stmt) bool { _, ok := s.(*ast.ExprStmt); return ok },
	"return": func(s ast.Stmt) bool { _, ok := s.(*ast.ReturnStmt); return ok },
	"go":     func(s ast.Stmt) bool { _, ok := s.(*ast.GoStmt); return ok },
	"defer":  func(s ast.Stmt) bool { _, ok := s.(*ast.DeferStmt); return ok },
	"empty":  func(s ast.Stmt) bool { _, ok := s.(*ast.EmptyStmt); return ok },
}

// RemoveStatements drops every statement of the configured kind from all
// statement lists of the tree. Statements in non-list positions (a for
// loop's init clause, say) stay put.
type RemoveStatements struct {
	Kind string
}

func makeRemoveStatements(p Params) (Rule, error) {
	kind, _ := stringParam(p, "stmt_type")
	if _, ok := stmtKinds[kind]; !ok {
		return nil, fmt.Errorf("unknown statement kind %q (have %v)", kind, kindNames())
	}
	return RemoveStatements{Kind: kind}, nil
}

func (r RemoveStatements) Name() string { return "remove_statements" }

func (r RemoveStatements) Describe() string {
	return registry[r.Name()].description
}

// Apply is part of the Rule interface.
func (r RemoveStatements) Apply(t *syntax.Tree) (int, error) {
	pred, ok := stmtKinds[r.Kind]
	if !ok {
		return 0, fmt.Errorf("unknown statement kind %q", r.Kind)
	}
	count := 0
	astutil.Apply(t.Root, func(c *astutil.Cursor) bool {
		s, ok := c.Node().(ast.Stmt)
		if !ok || !pred(s) {
			return true
		}
		if c.Index() < 0 { // not inside a statement list
			return true
		}
		c.Delete()
		count++
		return false
	}, nil)
	return count, nil
}

func kindNames() []string {
	names := make([]string, 0, len(stmtKinds))
	for k := range stmtKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
