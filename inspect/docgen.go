package inspect

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"strings"

	"github.com/npillmayer/arbor/syntax"
)

// Docgen generates Markdown documentation for the top-level functions of a
// source unit: a section per function with the regenerated signature and,
// if present, the doc comment.
func Docgen(t *syntax.Tree) (string, error) {
	if t == nil || t.Root == nil {
		return "", fmt.Errorf("cannot document a nil tree")
	}
	lines := []string{"# Code Documentation", ""}
	for _, d := range t.Root.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		sig, err := Signature(t.Fset, fd)
		if err != nil {
			return "", fmt.Errorf("function %s: %w", fd.Name.Name, err)
		}
		lines = append(lines,
			fmt.Sprintf("## Function: `%s`", fd.Name.Name),
			"",
			"**Signature:**",
			"",
			"```go",
			sig,
			"```",
			"")
		if doc := docText(fd); doc != "" {
			lines = append(lines, "**Description:**", "", doc, "")
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Signature regenerates the signature line of a function declaration from
// the tree, without body and doc comment.
func Signature(fset *token.FileSet, fd *ast.FuncDecl) (string, error) {
	shallow := *fd
	shallow.Body = nil
	shallow.Doc = nil
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, &shallow); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func docText(fd *ast.FuncDecl) string {
	if fd.Doc == nil {
		return ""
	}
	return strings.TrimSpace(fd.Doc.Text())
}
