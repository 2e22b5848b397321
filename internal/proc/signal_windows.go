//go:build windows

package proc

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// The child shares the supervisor's console so CTRL_C_EVENT can reach it.
// CREATE_NO_WINDOW must not be set or console signals could never be
// delivered.
func configureSysProcAttr(cmd *exec.Cmd) {}

func (c *child) Interrupt() error {
	// The event is broadcast to every process attached to the console,
	// including the supervisor; disable delivery to ourselves first.
	if err := windows.SetConsoleCtrlHandler(0, true); err != nil {
		return &OpError{Op: "interrupt", Err: err}
	}
	if err := windows.GenerateConsoleCtrlEvent(windows.CTRL_C_EVENT, 0); err != nil {
		return &OpError{Op: "interrupt", Err: err}
	}
	return nil
}

func (c *child) Kill() error {
	if err := c.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return &OpError{Op: "kill", Err: err}
	}
	return nil
}
