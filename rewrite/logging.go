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

// InjectEntryLog inserts a log statement as the first statement of every
// function body:
//
//	func greet(…) {          func greet(…) {
//	    …              ⇒         log.Printf("entering function: greet")
//	}                            …
//	                         }
//
// The log import is added if missing. Functions without bodies (external
// declarations) are skipped.
type InjectEntryLog struct {
	Message string // prefix of the logged line, defaults to "entering function"
}

func makeInjectEntryLog(p Params) (Rule, error) {
	r := InjectEntryLog{}
	if msg, ok := stringParam(p, "log_message"); ok {
		r.Message = msg
	}
	return r, nil
}

func (r InjectEntryLog) Name() string { return "add_logging" }

func (r InjectEntryLog) Describe() string {
	return registry[r.Name()].description
}

// Apply is part of the Rule interface.
func (r InjectEntryLog) Apply(t *syntax.Tree) (int, error) {
	msg := r.Message
	if msg == "" {
		msg = "entering function"
	}
	count := 0
	for _, d := range t.Root.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		stmt := entryLogStmt(msg + ": " + fd.Name.Name)
		fd.Body.List = append([]ast.Stmt{stmt}, fd.Body.List...)
		count++
	}
	if count > 0 {
		astutil.AddImport(t.Fset, t.Root, "log")
	}
	return count, nil
}

// entryLogStmt builds `log.Printf("<text>")`. The synthesized nodes carry
// no positions; the printer places them by its layout rules.
func entryLogStmt(text string) ast.Stmt {
	return &ast.ExprStmt{
		X: &ast.CallExpr{
			Fun: &ast.SelectorExpr{
				X:   ast.NewIdent("log"),
				Sel: ast.NewIdent("Printf"),
			},
			Args: []ast.Expr{
				&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(text)},
			},
		},
	}
}
