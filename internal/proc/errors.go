package proc

import "github.com/pkg/errors"

// ErrNotExited reports an exit-code request for a process that is still
// running.
var ErrNotExited = errors.New("process has not exited")

// OpError records a failed supervision operation together with the
// underlying operating-system error.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }
