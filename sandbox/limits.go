package sandbox

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strconv"
	"time"

	"github.com/npillmayer/arbor/syntax"
)

// Limits bounds the execution of a snippet.
type Limits struct {
	Timeout        time.Duration // wall-clock limit for one run
	MaxOutputBytes int           // stdout and stderr are each capped at this size
	BannedImports  []string      // import paths a snippet may not use
}

// DefaultLimits returns the limits used when nothing else is configured.
func DefaultLimits() Limits {
	return Limits{
		Timeout:        5 * time.Second,
		MaxOutputBytes: 64 * 1024,
		BannedImports:  []string{"os/exec", "net", "net/http", "syscall", "unsafe"},
	}
}

// Check statically validates a snippet: it must parse, and it must not
// import a banned package. Run refuses source that fails Check.
func (l Limits) Check(src []byte) error {
	t, err := syntax.ParseSnippet(src)
	if err != nil {
		return err
	}
	for _, imp := range t.Root.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		for _, banned := range l.BannedImports {
			if path == banned {
				return fmt.Errorf("import %q is not allowed in the sandbox", path)
			}
		}
	}
	return nil
}
