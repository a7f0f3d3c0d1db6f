//go:build !windows

package runner

import (
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"time"
)

func buildShellCommand(script string) *exec.Cmd {
	return exec.Command("sh", "-c", script)
}

// setProcessGroup starts the command in its own process group so that every
// descendant can be signalled at once.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate sends SIGTERM to the process group, waits up to grace for the
// process to exit, then sends SIGKILL.
func terminate(c *exec.Cmd, waitDone <-chan error, grace time.Duration) error {
	pgid := c.Process.Pid
	_ = syscall.Kill(-pgid, syscall.SIGTERM)

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case err := <-waitDone:
		// Descendants may ignore SIGTERM after the leader exits.
		_ = syscall.Kill(-pgid, syscall.SIGKILL)
		return err
	case <-timer.C:
	}

	_ = syscall.Kill(-pgid, syscall.SIGKILL)
	return <-waitDone
}

func maxRSS(state *os.ProcessState) int64 {
	if state == nil {
		return 0
	}
	usage, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || usage == nil {
		return 0
	}
	// Linux reports kilobytes, Darwin bytes.
	if runtime.GOOS == "darwin" {
		return int64(usage.Maxrss)
	}
	return int64(usage.Maxrss) * 1024
}
