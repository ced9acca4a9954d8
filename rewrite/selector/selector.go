package selector

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"go/ast"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/npillmayer/arbor/syntax"
)

// Token types of the selector language.
const (
	tokName  = iota + 1 // possibly qualified identifier
	tokColon            // ':'
	tokComma            // ','
)

var lexOnce sync.Once // monitors one-time compilation of the DFA
var lexer *lexmachine.Lexer
var lexErr error

func selectorLexer() (*lexmachine.Lexer, error) {
	lexOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?`), makeToken(tokName))
		lexer.Add([]byte(`\:`), makeToken(tokColon))
		lexer.Add([]byte(`\,`), makeToken(tokComma))
		lexer.Add([]byte(`( |\t)+`), skip)
		lexErr = lexer.Compile()
	})
	return lexer, lexErr
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// --- Selectors -------------------------------------------------------------

// Term is a single class:name pair of a selector.
type Term struct {
	Class string
	Name  string
}

// Selector matches tree nodes against a list of alternative terms. The
// empty selector matches nothing.
type Selector struct {
	terms []Term
}

var classes = map[string]bool{
	"func":  true,
	"call":  true,
	"kind":  true,
	"ident": true,
}

// Parse compiles selector syntax into a Selector. Unknown classes and
// malformed input are errors.
func Parse(input string) (*Selector, error) {
	if strings.TrimSpace(input) == "" {
		return &Selector{}, nil
	}
	lx, err := selectorLexer()
	if err != nil {
		return nil, fmt.Errorf("selector scanner: %w", err)
	}
	scan, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("selector scanner: %w", err)
	}
	var toks []*lexmachine.Token
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if err != nil {
			return nil, fmt.Errorf("selector %q: %v", input, err)
		}
		if tok != nil {
			toks = append(toks, tok.(*lexmachine.Token))
		}
	}
	sel := &Selector{}
	// grammar is flat:  selector ⟶ term (',' term)* ,  term ⟶ NAME ':' NAME
	for i := 0; i < len(toks); i += 4 {
		if i+2 >= len(toks) ||
			toks[i].Type != tokName || toks[i+1].Type != tokColon || toks[i+2].Type != tokName {
			return nil, fmt.Errorf("selector %q: expected class:name at term %d", input, len(sel.terms)+1)
		}
		if i+3 < len(toks) && toks[i+3].Type != tokComma {
			return nil, fmt.Errorf("selector %q: expected ',' between terms", input)
		}
		class := string(toks[i].Lexeme)
		if !classes[class] {
			return nil, fmt.Errorf("unknown selector class %q", class)
		}
		sel.terms = append(sel.terms, Term{Class: class, Name: string(toks[i+2].Lexeme)})
	}
	// a well-formed token list has length 4n+3; 4n means a dangling ','
	if len(toks)%4 == 0 {
		return nil, fmt.Errorf("selector %q: dangling ',' after term %d", input, len(sel.terms))
	}
	tracer().Debugf("selector %q has %d term(s)", input, len(sel.terms))
	return sel, nil
}

// Terms returns the parsed terms.
func (sel *Selector) Terms() []Term {
	return sel.terms
}

// Empty is true for a selector without terms.
func (sel *Selector) Empty() bool {
	return sel == nil || len(sel.terms) == 0
}

// Matches checks a node against the selector's terms.
func (sel *Selector) Matches(n ast.Node) bool {
	if sel.Empty() || n == nil {
		return false
	}
	for _, t := range sel.terms {
		if t.matches(n) {
			return true
		}
	}
	return false
}

func (t Term) matches(n ast.Node) bool {
	switch t.Class {
	case "func":
		fd, ok := n.(*ast.FuncDecl)
		return ok && fd.Name.Name == t.Name
	case "call":
		call, ok := n.(*ast.CallExpr)
		return ok && calleeName(call.Fun) == t.Name
	case "kind":
		return syntax.NodeType(n) == t.Name
	case "ident":
		id, ok := n.(*ast.Ident)
		return ok && id.Name == t.Name
	}
	return false
}

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
