//go:build !windows

package proc

import (
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
)

// The child runs in its own process group so the graceful-stop signal
// reaches the whole program without also terminating the supervisor.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func (c *child) Interrupt() error {
	if err := syscall.Kill(-c.pid, syscall.SIGINT); err != nil && !errors.Is(err, syscall.ESRCH) {
		return &OpError{Op: "interrupt", Err: err}
	}
	return nil
}

func (c *child) Kill() error {
	if err := syscall.Kill(-c.pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return &OpError{Op: "kill", Err: err}
	}
	return nil
}
