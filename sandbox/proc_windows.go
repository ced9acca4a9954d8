//go:build windows
// +build windows

package sandbox

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"os/exec"
)

// Process groups are a POSIX notion; on Windows only the go tool itself is
// killed on a deadline hit.
func setPgid(cmd *exec.Cmd) {}

func killGroup(cmd *exec.Cmd) {
	if cmd.Process != nil {
		cmd.Process.Kill()
	}
}
