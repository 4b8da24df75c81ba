//go:build !windows

package proc

import (
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Grace period between SIGTERM and SIGKILL when tearing down a previewer
// process group.
const killGrace = 50 * time.Millisecond

// SetProcessGroup makes cmd start in its own process group so the previewer
// and all of its children can be signaled together.
func SetProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// GroupID returns the process group of a started command.
func GroupID(cmd *exec.Cmd) int {
	if cmd.Process == nil {
		return 0
	}
	pgid, err := unix.Getpgid(cmd.Process.Pid)
	if err != nil {
		return cmd.Process.Pid
	}
	return pgid
}

func terminateGroup(pgid int) {
	_ = unix.Kill(-pgid, unix.SIGTERM)
	time.Sleep(killGrace)
	_ = unix.Kill(-pgid, unix.SIGKILL)
}
