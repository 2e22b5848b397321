//go:build !windows

package hostsvc

import (
	"os"
	"os/signal"
	"syscall"
)

// Run supervises the named service. Unix hosts have no service control
// protocol to register with: the process manager delivers stop requests as
// signals, so console mode is the service mode.
func Run(name, configPath string) error {
	return runConsole(name, configPath)
}

// signalChannel returns a buffered channel receiving SIGINT and SIGTERM, the
// conventional stop requests of Unix process managers.
func signalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}
