package proc

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/rdesantis/srvwrap/internal/config"
)

// Launcher starts the wrapped program described by a launch specification.
type Launcher interface {
	// Launch starts the process with inherited standard I/O, the resolved
	// environment and the configured working directory.
	Launch(ctx context.Context, spec *config.Spec) (Child, error)
}

// Child is the opaque handle to a launched process. The launcher owns it;
// callers drive it only through this interface and must not use it after
// Release.
type Child interface {
	// PID returns the operating-system process id.
	PID() int

	// Done returns a channel that is closed once the process has exited.
	Done() <-chan struct{}

	// Interrupt delivers the polite termination signal to the child's
	// process group, asking the program to exit on its own. It is safe to
	// call once per run; the supervisor itself is shielded from the signal.
	Interrupt() error

	// Wait blocks until the process exits or d elapses. A non-positive d
	// waits indefinitely. It reports whether the process exited.
	Wait(d time.Duration) bool

	// Kill terminates the process unconditionally. A process that is
	// already gone is treated as success.
	Kill() error

	// ExitCode returns the process exit code after termination. It fails
	// with ErrNotExited while the process is still running.
	ExitCode() (int, error)

	// Release drops the handle.
	Release()
}

type execLauncher struct{}

// New constructs a Launcher that executes the wrapped program as a local
// child process.
func New() Launcher { return execLauncher{} }

func (execLauncher) Launch(ctx context.Context, spec *config.Spec) (Child, error) {
	if err := ctx.Err(); err != nil {
		return nil, &OpError{Op: "launch", Err: err}
	}

	argv := append([]string(nil), spec.Args...)
	var cmd *exec.Cmd
	if spec.ApplicationName != "" {
		// The executable is taken exactly as configured with no PATH
		// search; the first command-line token stays an arbitrary argv[0].
		cmd = &exec.Cmd{Path: spec.ApplicationName, Args: argv}
	} else {
		cmd = exec.Command(argv[0], argv[1:]...)
	}
	cmd.Dir = spec.CurrentDirectory
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if spec.Env != nil {
		env := os.Environ()
		for k, v := range spec.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, &OpError{Op: "launch", Err: err}
	}

	c := &child{cmd: cmd, pid: cmd.Process.Pid, done: make(chan struct{})}
	go func() {
		c.waitErr = cmd.Wait()
		close(c.done)
	}()
	return c, nil
}

type child struct {
	cmd  *exec.Cmd
	pid  int
	done chan struct{}

	// waitErr is written once by the wait goroutine before done is closed;
	// readers must observe done first.
	waitErr error
}

func (c *child) PID() int { return c.pid }

func (c *child) Done() <-chan struct{} { return c.done }

func (c *child) Wait(d time.Duration) bool {
	if d <= 0 {
		<-c.done
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-c.done:
		return true
	case <-timer.C:
		return false
	}
}

func (c *child) ExitCode() (int, error) {
	select {
	case <-c.done:
	default:
		return 0, &OpError{Op: "exit code", Err: ErrNotExited}
	}
	if c.waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(c.waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, &OpError{Op: "exit code", Err: c.waitErr}
}

func (c *child) Release() {
	select {
	case <-c.done:
		// The wait goroutine already reaped the process.
	default:
		if c.cmd.Process != nil {
			_ = c.cmd.Process.Release()
		}
	}
}
