package inspect

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"go/ast"
	"go/token"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/npillmayer/arbor/syntax"
)

// ScopeInfo holds variable usage information (defined vs. used) for one
// function scope. The sets iterate in name order.
type ScopeInfo struct {
	Defined *treeset.Set
	Used    *treeset.Set
}

func newScopeInfo() *ScopeInfo {
	return &ScopeInfo{
		Defined: treeset.NewWithStringComparator(),
		Used:    treeset.NewWithStringComparator(),
	}
}

func (si *ScopeInfo) define(name string) {
	si.Defined.Add(name)
}

func (si *ScopeInfo) use(name string) {
	si.Used.Add(name)
}

// UnusedNames returns the defined-but-never-used names, sorted.
func (si *ScopeInfo) UnusedNames() []string {
	var unused []string
	for _, v := range si.Defined.Values() {
		if !si.Used.Contains(v) {
			unused = append(unused, v.(string))
		}
	}
	return unused
}

// Index is the variable-usage index of a source unit: one ScopeInfo per
// function declaration, in declaration order.
type Index struct {
	funcs  []*ast.FuncDecl
	scopes map[*ast.FuncDecl]*ScopeInfo
	fset   *token.FileSet
}

// BuildIndex is pass one: it walks the tree and records definitions and
// usages per function scope.
func BuildIndex(t *syntax.Tree) *Index {
	idx := &Index{
		scopes: make(map[*ast.FuncDecl]*ScopeInfo),
		fset:   t.Fset,
	}
	for _, d := range t.Root.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		idx.funcs = append(idx.funcs, fd)
		idx.scopes[fd] = indexFunc(fd)
	}
	tracer().Infof("usage index built for %d function(s)", len(idx.funcs))
	return idx
}

// Functions returns the indexed function declarations in source order.
func (idx *Index) Functions() []*ast.FuncDecl {
	return idx.funcs
}

// Scope returns the usage information for a function, or nil.
func (idx *Index) Scope(fd *ast.FuncDecl) *ScopeInfo {
	return idx.scopes[fd]
}

// FileSet returns the file set the index was built against.
func (idx *Index) FileSet() *token.FileSet {
	return idx.fset
}

// --- Pass one internals ----------------------------------------------------

// Identifier roles, attached by position (node identity) before the walk
// that fills the sets.
const (
	roleNone  int8 = iota
	roleDef        // a definition site (:=, var, range, parameters)
	roleWrite      // a plain write (=); counts as defined, not as used
	roleBoth       // read and write (op-assign, ++/--)
	roleSkip       // not a variable reference (selector part, labels, …)
)

func indexFunc(fd *ast.FuncDecl) *ScopeInfo {
	si := newScopeInfo()
	defineFieldNames(si, fd.Recv)
	defineFieldNames(si, fd.Type.Params)
	defineFieldNames(si, fd.Type.Results)
	roles := identRoles(fd.Body)
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok || id.Name == "_" {
			return true
		}
		switch roles[id] {
		case roleDef, roleWrite:
			si.define(id.Name)
		case roleBoth:
			si.define(id.Name)
			si.use(id.Name)
		case roleSkip:
			// not a variable reference
		default:
			si.use(id.Name)
		}
		return true
	})
	return si
}

// identRoles classifies identifier occurrences within a function body by
// node identity, so that the subsequent flat walk can fill the sets
// without carrying context.
func identRoles(body *ast.BlockStmt) map[*ast.Ident]int8 {
	roles := make(map[*ast.Ident]int8)
	mark := func(id *ast.Ident, role int8) {
		if id != nil {
			roles[id] = role
		}
	}
	markExpr := func(e ast.Expr, role int8) {
		if id, ok := e.(*ast.Ident); ok {
			mark(id, role)
		}
	}
	ast.Inspect(body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.AssignStmt:
			role := roleBoth // op-assign reads and writes
			switch x.Tok {
			case token.DEFINE:
				role = roleDef
			case token.ASSIGN:
				role = roleWrite
			}
			for _, lhs := range x.Lhs {
				markExpr(lhs, role)
			}
		case *ast.IncDecStmt:
			markExpr(x.X, roleBoth)
		case *ast.ValueSpec:
			for _, name := range x.Names {
				mark(name, roleDef)
			}
		case *ast.RangeStmt:
			if x.Tok == token.DEFINE {
				markExpr(x.Key, roleDef)
				markExpr(x.Value, roleDef)
			}
		case *ast.FuncLit:
			for _, f := range fieldNames(x.Type.Params) {
				mark(f, roleDef)
			}
			for _, f := range fieldNames(x.Type.Results) {
				mark(f, roleDef)
			}
		case *ast.SelectorExpr:
			mark(x.Sel, roleSkip)
		case *ast.KeyValueExpr:
			// struct-literal keys; identifier keys of map literals are
			// skipped as well, which is acceptable for an index of this
			// granularity
			markExpr(x.Key, roleSkip)
		case *ast.LabeledStmt:
			mark(x.Label, roleSkip)
		case *ast.BranchStmt:
			mark(x.Label, roleSkip)
		case *ast.TypeSpec:
			mark(x.Name, roleSkip)
		case *ast.Field:
			for _, name := range x.Names {
				if roles[name] == roleNone {
					mark(name, roleSkip)
				}
			}
		}
		return true
	})
	return roles
}

func defineFieldNames(si *ScopeInfo, fields *ast.FieldList) {
	if fields == nil {
		return
	}
	for _, f := range fields.List {
		for _, name := range f.Names {
			if name.Name != "_" {
				si.define(name.Name)
			}
		}
	}
}

func fieldNames(fields *ast.FieldList) []*ast.Ident {
	if fields == nil {
		return nil
	}
	var names []*ast.Ident
	for _, f := range fields.List {
		names = append(names, f.Names...)
	}
	return names
}
