package worker

import "sync/atomic"

// State is a worker Runtime's position in its lifecycle.
type State int32

const (
	StateInit State = iota
	StateReady
	StatePolling
	StateExecuting
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReady:
		return "ready"
	case StatePolling:
		return "polling"
	case StateExecuting:
		return "executing"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type atomicState struct {
	v atomic.Int32
}

func (a *atomicState) store(s State) {
	a.v.Store(int32(s))
}

func (a *atomicState) load() State {
	return State(a.v.Load())
}
