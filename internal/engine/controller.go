package engine

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/rdesantis/srvwrap/internal/config"
	"github.com/rdesantis/srvwrap/internal/logging"
	"github.com/rdesantis/srvwrap/internal/metrics"
	"github.com/rdesantis/srvwrap/internal/proc"
)

// DefaultStopTimeout bounds how long the controller waits for the child to
// honor the graceful-stop signal before killing it. The bound applies only
// to the host-initiated stop path.
const DefaultStopTimeout = 30 * time.Second

// Options tune a Controller.
type Options struct {
	// StopTimeout overrides DefaultStopTimeout when positive.
	StopTimeout time.Duration
}

// Controller drives a single supervised run: it launches the wrapped
// program, blocks on the race between a host stop request and the child
// exiting, escalates graceful stop to forced kill, and reports every state
// transition. A Controller supervises at most one run; Run must not be
// called twice.
type Controller struct {
	launcher proc.Launcher
	reporter Reporter
	sink     logging.Sink
	stop     *StopRequest
	timeout  time.Duration

	mu    sync.Mutex
	state State
}

// New constructs a Controller around the given launcher, status reporter and
// log sink.
func New(launcher proc.Launcher, reporter Reporter, sink logging.Sink, opts Options) *Controller {
	timeout := opts.StopTimeout
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}
	return &Controller{
		launcher: launcher,
		reporter: reporter,
		sink:     sink,
		stop:     NewStopRequest(),
		timeout:  timeout,
		state:    StateStartPending,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) transition(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.reporter.Report(s)
}

// HandleStop is the control-handler entry point for a stop command. It
// signals the stop request and re-reports the current state unchanged as an
// acknowledgment; the transition itself is driven by Run. Idempotent and
// safe to call concurrently with Run.
func (c *Controller) HandleStop() {
	c.stop.Signal()
	c.reporter.Report(c.State())
}

// HandleInterrogate re-reports the current state without changing it.
func (c *Controller) HandleInterrogate() {
	c.reporter.Report(c.State())
}

// Run executes the full supervision sequence and returns once the service
// has reached the Stopped state. The returned error reports supervisor-level
// failures only; a child that exits nonzero is logged but does not fail the
// run.
func (c *Controller) Run(ctx context.Context, spec *config.Spec) error {
	c.transition(StateStartPending)

	child, err := c.launcher.Launch(ctx, spec)
	if err != nil {
		c.sink.Error("launch", err)
		c.transition(StateStopped)
		return err
	}
	defer child.Release()

	c.sink.Infof("launched child process, pid %d", child.PID())
	c.transition(StateRunning)

	select {
	case <-c.stop.Done():
		return c.stopChild(child)
	case <-child.Done():
		// Host intent takes precedence when both events fire together.
		if c.stop.Signaled() {
			return c.stopChild(child)
		}
		return c.reapChild(child)
	}
}

// stopChild handles the host-initiated path: graceful interrupt, bounded
// wait, forced kill once the bound elapses.
func (c *Controller) stopChild(child proc.Child) error {
	c.transition(StateStopPending)
	c.sink.Infof("service signaled to stop")

	if err := child.Interrupt(); err != nil {
		c.sink.Error("interrupt", err)
		c.transition(StateStopped)
		return err
	}

	if child.Wait(c.timeout) {
		metrics.AddChildExit(metrics.OutcomeStopped)
	} else {
		c.sink.Infof("killing child process")
		metrics.IncForcedKills()
		if err := child.Kill(); err != nil {
			c.sink.Error("kill", err)
			c.transition(StateStopped)
			return err
		}
		child.Wait(0)
		metrics.AddChildExit(metrics.OutcomeKilled)
	}

	c.transition(StateStopped)
	return nil
}

// reapChild handles the child-initiated path: the program exited on its own.
func (c *Controller) reapChild(child proc.Child) error {
	c.transition(StateStopPending)
	c.sink.Infof("child process terminated")

	code, err := child.ExitCode()
	if err != nil {
		c.sink.Error("exit code", err)
		c.transition(StateStopped)
		return err
	}
	if code != 0 {
		// Informational only: the wrapped program's exit code never turns
		// the supervised run itself into a failure.
		c.sink.Error("child process", errors.Errorf("exited with code %d", code))
		metrics.AddChildExit(metrics.OutcomeError)
	} else {
		metrics.AddChildExit(metrics.OutcomeOK)
	}

	c.transition(StateStopped)
	return nil
}
