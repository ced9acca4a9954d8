package syntax

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
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"
)

// ErrEmptySource flags input without any source text.
var ErrEmptySource = errors.New("source is empty")

// Tree is a parsed source unit: the syntax tree of a single file, together
// with the file set needed to resolve node positions.
type Tree struct {
	Name string          // a name for the source unit, used in diagnostics
	Fset *token.FileSet  // position information for nodes of Root
	Root *ast.File       // the syntax tree
	src  []byte          // original source text
}

// Parse parses a complete source file. name is used for positions in error
// messages and may be empty. Blank input is rejected with ErrEmptySource.
//
// Syntax errors are returned with file/line/column positions preserved
// (a scanner.ErrorList unwraps from the returned error).
func Parse(name string, src []byte) (*Tree, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, ErrEmptySource
	}
	if name == "" {
		name = "source.go"
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		tracer().Infof("parse of %s failed: %v", name, err)
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	tracer().Debugf("parsed %s: %d declaration(s)", name, len(f.Decls))
	return &Tree{Name: name, Fset: fset, Root: f, src: src}, nil
}

// ParseSnippet parses source text that need not be a complete file. Bare
// declarations get a synthetic package clause, bare statements additionally
// a synthetic enclosing function, mirroring how one feeds fragments to the
// parser during experiments.
func ParseSnippet(src []byte) (*Tree, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return nil, ErrEmptySource
	}
	if t, err := Parse("snippet.go", src); err == nil {
		return t, nil
	}
	decls := []byte("package main\n\n")
	decls = append(decls, src...)
	if t, err := Parse("snippet.go", decls); err == nil {
		return t, nil
	}
	var stmts []byte
	stmts = append(stmts, "package main\n\nfunc main() {\n"...)
	stmts = append(stmts, src...)
	stmts = append(stmts, "\n}\n"...)
	t, err := Parse("snippet.go", stmts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Source returns the original source text the tree was parsed from.
func (t *Tree) Source() []byte {
	if t == nil {
		return nil
	}
	return t.src
}

// Validate checks src for syntax errors without keeping the tree around.
// It returns true and a short confirmation on success, otherwise false and
// the first error's message with position.
func Validate(src []byte) (bool, string) {
	_, err := ParseSnippet(src)
	if err == nil {
		return true, "syntax is valid"
	}
	if errors.Is(err, ErrEmptySource) {
		return false, ErrEmptySource.Error()
	}
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return false, list[0].Error()
	}
	return false, err.Error()
}
