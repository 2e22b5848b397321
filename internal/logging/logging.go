// Package logging defines the sink supervisor events are recorded to and a
// logrus-backed implementation of it. Under Windows service supervision the
// host binding substitutes an event-log sink with the same interface.
package logging

import (
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Sink records informational and error events of one supervised run.
type Sink interface {
	// Infof records an informational message.
	Infof(format string, args ...interface{})

	// Error records a failed operation together with the underlying error.
	Error(op string, err error)
}

// NewSink returns a Sink that writes structured entries through the given
// logrus logger, tagged with the service name.
func NewSink(logger *logrus.Logger, service string) Sink {
	return &logSink{entry: logger.WithFields(logrus.Fields{
		"service": service,
	})}
}

type logSink struct {
	entry *logrus.Entry
}

func (s *logSink) Infof(format string, args ...interface{}) {
	s.entry.Infof(format, args...)
}

func (s *logSink) Error(op string, err error) {
	entry := s.entry.WithField("op", op)
	var errno syscall.Errno
	if errors.As(err, &errno) {
		entry = entry.WithField("errno", uintptr(errno))
	}
	entry.WithError(err).Errorf("%s failed", op)
}
