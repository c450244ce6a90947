// Package sched elevates the whole process to a fixed-priority real-time
// scheduling class. The pipeline must not start if elevation was
// requested but failed; running without the guarantee the operator asked
// for silently degrades receive timing.
package sched

import (
	"errors"
	"fmt"
)

// SCHED_RR priority bounds accepted on the command line.
const (
	MinPriority = 1
	MaxPriority = 32
)

var (
	// ErrUnsupported is returned on platforms without SCHED_RR.
	ErrUnsupported = errors.New("sched: real-time scheduling not supported on this platform")

	// ErrApply is returned (wrapped) when the scheduling request is
	// rejected, typically for missing privileges.
	ErrApply = errors.New("sched: setting SCHED_RR failed")
)

// Apply requests round-robin real-time scheduling for the whole process
// at the given priority. A priority of 0 means none was requested and is
// a no-op. Any failure is fatal to the caller.
func Apply(priority int) error {
	if priority == 0 {
		return nil
	}
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("%w: priority %d outside %d..%d", ErrApply, priority, MinPriority, MaxPriority)
	}
	if err := setRoundRobin(priority); err != nil {
		return fmt.Errorf("%w: %w", ErrApply, err)
	}
	return nil
}
