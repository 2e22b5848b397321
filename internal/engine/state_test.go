package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStopRequestSignalIsIdempotent(t *testing.T) {
	req := NewStopRequest()
	require.False(t, req.Signaled())

	req.Signal()
	req.Signal()

	require.True(t, req.Signaled())
	select {
	case <-req.Done():
	default:
		t.Fatal("done channel not closed after signal")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateStartPending: "start-pending",
		StateRunning:      "running",
		StateStopPending:  "stop-pending",
		StateStopped:      "stopped",
		State(99):         "unknown",
	}
	for state, want := range cases {
		require.Equal(t, want, state.String())
	}
}
