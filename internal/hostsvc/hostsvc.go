// Package hostsvc binds the controller to the host's service framework: the
// Windows service control manager when running under it, a signal-driven
// console mode everywhere else. The controller never depends on a concrete
// binding; this package owns the registration and control dispatch.
package hostsvc

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rdesantis/srvwrap/internal/config"
	"github.com/rdesantis/srvwrap/internal/engine"
	"github.com/rdesantis/srvwrap/internal/logging"
	"github.com/rdesantis/srvwrap/internal/proc"
)

// consoleReporter logs state transitions in place of a service manager's
// status calls.
type consoleReporter struct {
	sink logging.Sink
}

func (r consoleReporter) Report(s engine.State) {
	r.sink.Infof("service status: %s", s)
}

// runConsole supervises one run outside a service manager. Stop requests
// arrive as termination signals from the hosting process manager or an
// interactive Ctrl+C.
func runConsole(name, configPath string) error {
	logger := logrus.New()
	sink := logging.NewSink(logger, name)

	spec, err := config.Load(configPath)
	if err != nil {
		sink.Error("configuration", err)
		return err
	}

	ctrl := engine.New(proc.New(), consoleReporter{sink: sink}, sink, engine.Options{})

	done := make(chan struct{})
	defer close(done)
	go forwardStopSignals(ctrl, done)

	// Supervisor-level failures are logged and reported by the controller;
	// a fully supervised run exits clean regardless of how the child ended.
	_ = ctrl.Run(context.Background(), spec)
	return nil
}

func forwardStopSignals(ctrl *engine.Controller, done <-chan struct{}) {
	ch := signalChannel()
	for {
		select {
		case <-ch:
			ctrl.HandleStop()
		case <-done:
			return
		}
	}
}
