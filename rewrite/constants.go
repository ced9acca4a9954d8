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
	"math"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/npillmayer/arbor/syntax"
)

// ReplaceConstants replaces numeric literals. With Old set, only literals
// whose numeric value equals *Old are touched; with Old == nil every INT
// and FLOAT literal becomes New — the classic "everything is 42" demo.
// String literals are never touched.
type ReplaceConstants struct {
	Old *float64
	New float64
}

func makeReplaceConstants(p Params) (Rule, error) {
	r := ReplaceConstants{New: 42}
	if v, ok := numberParam(p, "new_value"); ok {
		r.New = v
	}
	if v, ok := numberParam(p, "old_value"); ok {
		r.Old = &v
	}
	return r, nil
}

func (r ReplaceConstants) Name() string { return "replace_constants" }

func (r ReplaceConstants) Describe() string {
	return registry[r.Name()].description
}

// Apply is part of the Rule interface.
func (r ReplaceConstants) Apply(t *syntax.Tree) (int, error) {
	count := 0
	astutil.Apply(t.Root, func(c *astutil.Cursor) bool {
		lit, ok := c.Node().(*ast.BasicLit)
		if !ok || (lit.Kind != token.INT && lit.Kind != token.FLOAT) {
			return true
		}
		if r.Old != nil {
			v, err := strconv.ParseFloat(lit.Value, 64)
			if err != nil || v != *r.Old {
				return true
			}
		}
		c.Replace(&ast.BasicLit{
			ValuePos: lit.ValuePos,
			Kind:     numberKind(r.New),
			Value:    formatNumber(r.New),
		})
		count++
		return true
	}, nil)
	return count, nil
}

func numberKind(v float64) token.Token {
	if v == math.Trunc(v) {
		return token.INT
	}
	return token.FLOAT
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
