//go:build windows

package executor

import (
	"os"
	"os/exec"
	"time"
)

const procGroupWaitDelay = 3 * time.Second

// setupProcessGroup on Windows falls back to killing the direct child.
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return os.ErrProcessDone
		}
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = procGroupWaitDelay
}
