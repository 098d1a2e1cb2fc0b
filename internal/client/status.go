package client

import "sync"

// Connectivity is the health signal exposed to the UI. It starts at
// [ConnectivityUnknown] and moves to connected or disconnected as request
// outcomes and health probes are observed; it never returns to unknown.
// Any HTTP response counts as connected, 4xx and 5xx included: an error
// status still proves the backend answered. Only transport-level failure
// after every candidate and retry is exhausted reports disconnected.
type Connectivity int

const (
	ConnectivityUnknown Connectivity = iota
	ConnectivityConnected
	ConnectivityDisconnected
)

func (c Connectivity) String() string {
	switch c {
	case ConnectivityConnected:
		return "connected"
	case ConnectivityDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// statusTracker holds the shared connectivity state. Each logical request
// takes a generation number at start; an outcome is applied only when no
// newer request has already reported, so a slow failure cannot clobber the
// result of a request that started after it.
type statusTracker struct {
	mu      sync.RWMutex
	state   Connectivity
	nextGen uint64
	applied uint64
}

func newStatusTracker() *statusTracker {
	return &statusTracker{}
}

func (t *statusTracker) Status() Connectivity {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.state
}

// begin allocates a generation number for a new logical request.
func (t *statusTracker) begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextGen++

	return t.nextGen
}

// observe records the outcome of the request identified by gen. Outcomes
// from requests older than the newest already-applied one are discarded.
func (t *statusTracker) observe(gen uint64, state Connectivity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen < t.applied {
		return
	}

	t.applied = gen
	t.state = state
}
