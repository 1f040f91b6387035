package auth

import (
	"context"
	"sync"
)

// GateState is the identity gate's position for one session.
type GateState int

const (
	// StateUnknown holds while the identity check is still pending.
	StateUnknown GateState = iota
	// StateDenied is terminal for the session until a re-authentication
	// resets the gate.
	StateDenied
	// StateAuthorized is terminal and grants access to the admin section.
	StateAuthorized
)

func (s GateState) String() string {
	switch s {
	case StateDenied:
		return "denied"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Gate tracks whether the current identity may enter the admin section.
// Transitions happen only out of StateUnknown: the first observed
// identity decides the session. Reset returns the gate to StateUnknown
// for a re-authentication.
type Gate struct {
	policy Policy

	mu    sync.Mutex
	state GateState
}

// NewGate builds a gate in StateUnknown over the given policy.
func NewGate(policy Policy) *Gate {
	return &Gate{policy: policy, state: StateUnknown}
}

// State returns the gate's current position.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Observe feeds one resolved identity (or nil for "no identity") into the
// gate and returns the resulting state. Observations after the gate has
// settled are ignored.
func (g *Gate) Observe(id *Identity) GateState {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateUnknown {
		return g.state
	}
	if id != nil && g.policy.Authorized(id.UID) {
		g.state = StateAuthorized
	} else {
		g.state = StateDenied
	}
	return g.state
}

// Reset returns the gate to StateUnknown, e.g. before a fresh sign-in.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateUnknown
}

// Run consumes an identity-change stream until ctx is done or the gate
// settles, mirroring a mounted view subscribing to the identity service
// and tearing the subscription down on unmount.
func (g *Gate) Run(ctx context.Context, identities <-chan *Identity) GateState {
	for {
		select {
		case <-ctx.Done():
			return g.State()
		case id, ok := <-identities:
			if !ok {
				return g.State()
			}
			if st := g.Observe(id); st != StateUnknown {
				return st
			}
		}
	}
}
