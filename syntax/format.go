package syntax

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
)

// Format regenerates source text from the tree. This is the counterpart of
// Parse: a tree mutated by rewriters is turned back into (gofmt-normalized)
// code. Synthesized nodes without position information are placed by the
// printer's layout rules.
func (t *Tree) Format() (string, error) {
	if t == nil || t.Root == nil {
		return "", errors.New("cannot format a nil tree")
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, t.Fset, t.Root); err != nil {
		return "", fmt.Errorf("regenerating source: %w", err)
	}
	return buf.String(), nil
}
