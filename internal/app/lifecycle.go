package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// State represents the lifecycle state of the daemon.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateRunning
	StateShuttingDown
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInitializing:
		return "Initializing"
	case StateRunning:
		return "Running"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// ErrBadTransition is returned for a lifecycle transition the state
// machine does not allow.
var ErrBadTransition = errors.New("app: invalid lifecycle transition")

// Lifecycle is the daemon's state machine. Construction and teardown run
// on a single control goroutine; the lock only makes State() safe to
// read from elsewhere.
type Lifecycle struct {
	mu     sync.RWMutex
	state  State
	logger zerolog.Logger
}

// NewLifecycle creates a lifecycle manager in StateIdle.
func NewLifecycle(logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{state: StateIdle, logger: logger}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to move to a new state. The machine only moves
// forward: Idle → Initializing → Running → ShuttingDown → Terminated,
// with Initializing allowed to skip straight to ShuttingDown on failure.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	valid := false
	switch oldState {
	case StateIdle:
		valid = newState == StateInitializing
	case StateInitializing:
		valid = newState == StateRunning || newState == StateShuttingDown
	case StateRunning:
		valid = newState == StateShuttingDown
	case StateShuttingDown:
		valid = newState == StateTerminated
	case StateTerminated:
		valid = false
	}
	if !valid {
		l.mu.Unlock()
		return fmt.Errorf("%w: %v -> %v", ErrBadTransition, oldState, newState)
	}

	l.state = newState
	l.mu.Unlock()

	l.logger.Info().
		Str("from", oldState.String()).
		Str("to", newState.String()).
		Str("reason", reason).
		Msg("state transition")

	return nil
}
