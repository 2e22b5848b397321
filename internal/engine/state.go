package engine

import "sync"

// State is the externally visible lifecycle state of the supervised service.
// Transitions are monotonic and Stopped is terminal.
type State int32

const (
	StateStartPending State = iota
	StateRunning
	StateStopPending
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStartPending:
		return "start-pending"
	case StateRunning:
		return "running"
	case StateStopPending:
		return "stop-pending"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Reporter receives every state transition of the controller. The terminal
// Stopped state is reported exactly once, as the last transition.
// Implementations must tolerate concurrent calls: the control handler
// re-reports the current state while the supervision loop runs.
type Reporter interface {
	Report(State)
}

// StopRequest is the single-fire "host asked the service to stop" signal.
// The control handler sets it, the supervision loop observes it; signalling
// more than once is a no-op.
type StopRequest struct {
	once sync.Once
	ch   chan struct{}
}

// NewStopRequest returns an unsignalled stop request.
func NewStopRequest() *StopRequest {
	return &StopRequest{ch: make(chan struct{})}
}

// Signal marks the request. Idempotent.
func (r *StopRequest) Signal() { r.once.Do(func() { close(r.ch) }) }

// Done returns a channel that is closed once the request has been signalled.
func (r *StopRequest) Done() <-chan struct{} { return r.ch }

// Signaled reports whether the request has been signalled.
func (r *StopRequest) Signaled() bool {
	select {
	case <-r.ch:
		return true
	default:
		return false
	}
}
