//go:build windows

package hostsvc

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"

	"github.com/rdesantis/srvwrap/internal/config"
	"github.com/rdesantis/srvwrap/internal/engine"
	"github.com/rdesantis/srvwrap/internal/proc"
)

const (
	infoEventID  uint32 = 1
	errorEventID uint32 = 2

	startPendingWaitHintMillis = 3000
)

// Run registers the named service with the service control manager and
// blocks until it has stopped. Outside the SCM it falls back to console
// mode so the wrapper can be exercised interactively.
func Run(name, configPath string) error {
	inService, err := svc.IsWindowsService()
	if err != nil {
		return errors.Wrap(err, "detect service environment")
	}
	if !inService {
		return runConsole(name, configPath)
	}

	elog, err := eventlog.Open(name)
	if err != nil {
		return errors.Wrap(err, "open event log")
	}
	defer elog.Close()

	handler := &scmHandler{name: name, configPath: configPath, elog: elog}
	if err := svc.Run(name, handler); err != nil {
		_ = elog.Error(errorEventID, fmt.Sprintf("%s: service dispatcher failed: %v", name, err))
		return errors.Wrap(err, "run service dispatcher")
	}
	return nil
}

// signalChannel returns a buffered channel receiving os.Interrupt, used by
// the console fallback. Windows has no SIGTERM; the runtime maps
// CTRL_BREAK_EVENT and console-close events onto os.Interrupt.
func signalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return ch
}

// eventlogSink records supervisor events in the Windows application event
// log under the service name as source.
type eventlogSink struct {
	name string
	elog *eventlog.Log
}

func (s *eventlogSink) Infof(format string, args ...interface{}) {
	_ = s.elog.Info(infoEventID, s.name+": "+fmt.Sprintf(format, args...))
}

func (s *eventlogSink) Error(op string, err error) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		_ = s.elog.Error(errorEventID, fmt.Sprintf("%s: %s failed with error %d hex %#x: %v",
			s.name, op, uintptr(errno), uintptr(errno), err))
		return
	}
	_ = s.elog.Error(errorEventID, fmt.Sprintf("%s: %s failed: %v", s.name, op, err))
}

// scmReporter translates controller states into SCM status updates: pending
// states carry an increasing checkpoint and the start-pending state accepts
// no controls yet.
type scmReporter struct {
	changes chan<- svc.Status

	mu         sync.Mutex
	checkpoint uint32
}

func (r *scmReporter) Report(s engine.State) {
	st := svc.Status{State: toSvcState(s)}
	if s != engine.StateStartPending {
		st.Accepts = svc.AcceptStop | svc.AcceptShutdown
	}

	r.mu.Lock()
	switch s {
	case engine.StateRunning, engine.StateStopped:
		r.checkpoint = 0
	default:
		r.checkpoint++
		st.CheckPoint = r.checkpoint
	}
	r.mu.Unlock()

	if s == engine.StateStartPending {
		st.WaitHint = startPendingWaitHintMillis
	}
	r.changes <- st
}

func toSvcState(s engine.State) svc.State {
	switch s {
	case engine.StateStartPending:
		return svc.StartPending
	case engine.StateRunning:
		return svc.Running
	case engine.StateStopPending:
		return svc.StopPending
	default:
		return svc.Stopped
	}
}

// scmHandler is the svc.Handler driving one supervised run. The dispatcher
// invokes Execute on its own goroutine and delivers control requests on r.
type scmHandler struct {
	name       string
	configPath string
	elog       *eventlog.Log
}

func (h *scmHandler) Execute(args []string, requests <-chan svc.ChangeRequest, changes chan<- svc.Status) (bool, uint32) {
	changes <- svc.Status{State: svc.StartPending, WaitHint: startPendingWaitHintMillis}

	sink := &eventlogSink{name: h.name, elog: h.elog}

	spec, err := config.Load(h.configPath)
	if err != nil {
		sink.Error("configuration", err)
		changes <- svc.Status{State: svc.Stopped}
		return true, 1
	}

	ctrl := engine.New(proc.New(), &scmReporter{changes: changes}, sink, engine.Options{})

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Run(context.Background(), spec)
	}()

	for {
		select {
		case req := <-requests:
			switch req.Cmd {
			case svc.Interrogate:
				ctrl.HandleInterrogate()
			case svc.Stop, svc.Shutdown:
				ctrl.HandleStop()
			}
		case err := <-done:
			if err != nil {
				return true, 1
			}
			return false, 0
		}
	}
}
