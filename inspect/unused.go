package inspect

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/arbor"
)

// Finding reports the unused variables of one function scope.
type Finding struct {
	Func   string         `json:"func"`
	Loc    arbor.Location `json:"location"`
	Unused []string       `json:"unused"`
}

func (f Finding) String() string {
	return fmt.Sprintf("in function %q (line %d), unused variables: %v",
		f.Func, f.Loc.Line, f.Unused)
}

// UnusedLocals is pass two of the unused-variable technique: it analyzes a
// usage index and reports, per function and in declaration order, the
// names that were defined but never used. Functions without unused names
// produce no finding.
func UnusedLocals(idx *Index) []Finding {
	var findings []Finding
	for _, fd := range idx.Functions() {
		si := idx.Scope(fd)
		if si == nil {
			continue
		}
		unused := si.UnusedNames()
		if len(unused) == 0 {
			continue
		}
		findings = append(findings, Finding{
			Func:   fd.Name.Name,
			Loc:    arbor.LocationFor(idx.FileSet(), fd.Pos()),
			Unused: unused,
		})
	}
	tracer().Infof("%d function(s) with unused variables", len(findings))
	return findings
}
