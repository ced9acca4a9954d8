package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"go/ast"
	"go/token"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/npillmayer/arbor/syntax"
)

// Guard describes a risky callee: a function whose error result must not
// be dropped. Results tells how many values the callee returns (1 = error
// only, 2 = value plus error); Fallback, if non-nil, is assigned to the
// value on failure.
type Guard struct {
	Callee   string // qualified name, e.g. "json.Unmarshal"
	Results  int
	Fallback ast.Expr
}

// DefaultGuards is the built-in registry of risky callees.
func DefaultGuards() []Guard {
	nilExpr := func() ast.Expr { return ast.NewIdent("nil") }
	zero := func() ast.Expr { return &ast.BasicLit{Kind: token.INT, Value: "0"} }
	return []Guard{
		{Callee: "json.Unmarshal", Results: 1},
		{Callee: "json.Marshal", Results: 2, Fallback: nilExpr()},
		{Callee: "os.Open", Results: 2, Fallback: nilExpr()},
		{Callee: "http.Get", Results: 2, Fallback: nilExpr()},
		{Callee: "strconv.Atoi", Results: 2, Fallback: zero()},
	}
}

// GuardRiskyCalls rewrites statements that call a registered risky callee
// and drop its error result:
//
//	risky(…)           ⇒  if err := risky(…); err != nil { log.Printf(…) }
//	x, _ := risky(…)   ⇒  x, err := risky(…)
//	                      if err != nil { log.Printf(…); x = <fallback> }
//
// Calls whose error result is already consumed are left alone.
type GuardRiskyCalls struct {
	Guards []Guard
}

func makeGuardRiskyCalls(p Params) (Rule, error) {
	guards := DefaultGuards()
	if only := stringsParam(p, "callees"); len(only) > 0 {
		keep := make(map[string]bool, len(only))
		for _, name := range only {
			keep[name] = true
		}
		var filtered []Guard
		for _, g := range guards {
			if keep[g.Callee] {
				filtered = append(filtered, g)
			}
		}
		guards = filtered
	}
	return GuardRiskyCalls{Guards: guards}, nil
}

func (r GuardRiskyCalls) Name() string { return "guard_risky_calls" }

func (r GuardRiskyCalls) Describe() string {
	return registry[r.Name()].description
}

// Apply is part of the Rule interface.
func (r GuardRiskyCalls) Apply(t *syntax.Tree) (int, error) {
	count := 0
	ast.Inspect(t.Root, func(n ast.Node) bool {
		block, ok := n.(*ast.BlockStmt)
		if !ok {
			return true
		}
		out := make([]ast.Stmt, 0, len(block.List))
		for _, s := range block.List {
			if repl := r.guardStmt(s); repl != nil {
				out = append(out, repl...)
				count++
				continue
			}
			out = append(out, s)
		}
		block.List = out
		return true
	})
	if count > 0 {
		astutil.AddImport(t.Fset, t.Root, "log")
	}
	return count, nil
}

// guardStmt returns the replacement statements for s, or nil if s needs no
// guarding.
func (r GuardRiskyCalls) guardStmt(s ast.Stmt) []ast.Stmt {
	switch stmt := s.(type) {
	case *ast.ExprStmt:
		call, ok := stmt.X.(*ast.CallExpr)
		if !ok {
			return nil
		}
		g, ok := r.guardFor(call)
		if !ok {
			return nil
		}
		return []ast.Stmt{guardedCall(g, call)}
	case *ast.AssignStmt:
		return r.guardAssign(stmt)
	}
	return nil
}

// guardAssign handles `x, _ := risky(…)` — the idiomatic way of dropping
// an error — by resurrecting the error into a checked variable.
func (r GuardRiskyCalls) guardAssign(stmt *ast.AssignStmt) []ast.Stmt {
	if stmt.Tok != token.DEFINE || len(stmt.Rhs) != 1 || len(stmt.Lhs) != 2 {
		return nil
	}
	last, ok := stmt.Lhs[1].(*ast.Ident)
	if !ok || last.Name != "_" {
		return nil
	}
	call, ok := stmt.Rhs[0].(*ast.CallExpr)
	if !ok {
		return nil
	}
	g, ok := r.guardFor(call)
	if !ok || g.Results != 2 {
		return nil
	}
	tracer().Debugf("guarding dropped error of %s", g.Callee)
	stmt.Lhs[1] = ast.NewIdent("err")
	body := []ast.Stmt{logErrorStmt(g.Callee)}
	if target, ok := stmt.Lhs[0].(*ast.Ident); ok && target.Name != "_" && g.Fallback != nil {
		body = append(body, &ast.AssignStmt{
			Lhs: []ast.Expr{ast.NewIdent(target.Name)},
			Tok: token.ASSIGN,
			Rhs: []ast.Expr{g.Fallback},
		})
	}
	return []ast.Stmt{stmt, errCheck(nil, body)}
}

func (r GuardRiskyCalls) guardFor(call *ast.CallExpr) (Guard, bool) {
	name := calleeName(call.Fun)
	if name == "" {
		return Guard{}, false
	}
	for _, g := range r.Guards {
		if g.Callee == name {
			return g, true
		}
	}
	return Guard{}, false
}

// guardedCall wraps a call statement into `if [_,] err := call; err != nil {…}`.
func guardedCall(g Guard, call *ast.CallExpr) ast.Stmt {
	lhs := []ast.Expr{ast.NewIdent("err")}
	if g.Results == 2 {
		lhs = []ast.Expr{ast.NewIdent("_"), ast.NewIdent("err")}
	}
	init := &ast.AssignStmt{Lhs: lhs, Tok: token.DEFINE, Rhs: []ast.Expr{call}}
	return errCheck(init, []ast.Stmt{logErrorStmt(g.Callee)})
}

// errCheck builds `if [init;] err != nil { body }`.
func errCheck(init ast.Stmt, body []ast.Stmt) ast.Stmt {
	return &ast.IfStmt{
		Init: init,
		Cond: &ast.BinaryExpr{
			X:  ast.NewIdent("err"),
			Op: token.NEQ,
			Y:  ast.NewIdent("nil"),
		},
		Body: &ast.BlockStmt{List: body},
	}
}

// logErrorStmt builds `log.Printf("<callee> failed: %v", err)`.
func logErrorStmt(callee string) ast.Stmt {
	return &ast.ExprStmt{
		X: &ast.CallExpr{
			Fun: &ast.SelectorExpr{
				X:   ast.NewIdent("log"),
				Sel: ast.NewIdent("Printf"),
			},
			Args: []ast.Expr{
				&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(callee + " failed: %v")},
				ast.NewIdent("err"),
			},
		},
	}
}

// calleeName renders the callee of a call as a one- or two-part name:
// `f` or `pkg.f`. Anything more involved is out of scope for guarding.
func calleeName(e ast.Expr) string {
	switch f := e.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		if x, ok := f.X.(*ast.Ident); ok {
			return x.Name + "." + f.Sel.Name
		}
	}
	return ""
}
