package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/npillmayer/arbor/syntax"
)

// RenameFunction renames a top-level function together with all call sites
// referring to it by plain identifier. Selector expressions (method calls,
// qualified names) are left alone, as are declarations of unrelated names.
type RenameFunction struct {
	Old string
	New string
}

func makeRenameFunction(p Params) (Rule, error) {
	old, okOld := stringParam(p, "old_name")
	nw, okNew := stringParam(p, "new_name")
	if !okOld || !okNew {
		return nil, errors.New("rename_function needs old_name and new_name")
	}
	return RenameFunction{Old: old, New: nw}, nil
}

func (r RenameFunction) Name() string { return "rename_function" }

func (r RenameFunction) Describe() string {
	return registry[r.Name()].description
}

// Apply is part of the Rule interface.
func (r RenameFunction) Apply(t *syntax.Tree) (int, error) {
	if r.Old == "" || r.Old == "_" || r.New == "_" || !token.IsIdentifier(r.New) {
		return 0, fmt.Errorf("cannot rename %q to %q", r.Old, r.New)
	}
	found := false
	for _, d := range t.Root.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Recv != nil {
			continue
		}
		if fd.Name.Name == r.Old {
			found = true
		}
		if fd.Name.Name == r.New {
			return 0, fmt.Errorf("a function named %q already exists", r.New)
		}
	}
	if !found {
		return 0, fmt.Errorf("no top-level function %q", r.Old)
	}
	count := 0
	astutil.Apply(t.Root, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Ident)
		if !ok || id.Name != r.Old {
			return true
		}
		// Do not touch the selector part of x.f — that f is another name.
		if sel, ok := c.Parent().(*ast.SelectorExpr); ok && sel.Sel == id {
			return true
		}
		id.Name = r.New
		count++
		return true
	}, nil)
	return count, nil
}
