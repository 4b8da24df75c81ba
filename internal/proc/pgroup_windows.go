//go:build windows

package proc

import (
	"os"
	"os/exec"
)

// SetProcessGroup is a no-op on Windows; previewer children are not grouped.
func SetProcessGroup(cmd *exec.Cmd) {}

// GroupID returns the process id of a started command.
func GroupID(cmd *exec.Cmd) int {
	if cmd.Process == nil {
		return 0
	}
	return cmd.Process.Pid
}

func terminateGroup(pgid int) {
	if p, err := os.FindProcess(pgid); err == nil {
		_ = p.Kill()
	}
}
