//go:build windows

package runner

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// buildShellCommand uses the full path to PowerShell.
func buildShellCommand(script string) *exec.Cmd {
	systemRoot := os.Getenv("SYSTEMROOT")
	if systemRoot == "" {
		systemRoot = `C:\Windows`
	}
	powershellPath := filepath.Join(systemRoot, "System32", "WindowsPowerShell", "v1.0", "powershell.exe")
	return exec.Command(powershellPath, "-NoProfile", "-NonInteractive", "-Command", script)
}

func setProcessGroup(*exec.Cmd) {}

func terminate(c *exec.Cmd, waitDone <-chan error, _ time.Duration) error {
	_ = c.Process.Kill()
	return <-waitDone
}

func maxRSS(*os.ProcessState) int64 {
	return 0
}
