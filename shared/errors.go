// SPDX-License-Identifier: MIT
// Package shared: sentinel error set and the contract-violation value.

package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrBadParticipants is returned by New when the barrier target is < 1 or
	// exceeds the number of sections.
	ErrBadParticipants = errors.New("shared: participants must be in [1, sections]")

	// ErrAlreadyInitialized marks a second split of an already partitioned
	// matrix. It indicates a logic error in the coordinator, never a race.
	ErrAlreadyInitialized = errors.New("shared: sections already exist")

	// ErrSectionClaimed marks a claim of a section some other caller owns or
	// has already consumed this round.
	ErrSectionClaimed = errors.New("shared: section already claimed")

	// ErrRoundComplete marks a claim made after every participant of the
	// round was admitted. The barrier may already be open; the claim must not
	// touch the aggregate.
	ErrRoundComplete = errors.New("shared: every participant already admitted this round")

	// ErrSectionIndex marks a claim of an index outside [0, sections).
	ErrSectionIndex = errors.New("shared: section index out of range")

	// ErrRoundInProgress is returned by Reset while sections are still out
	// or the completion barrier has not been reached.
	ErrRoundInProgress = errors.New("shared: round still in progress")
)

// Violation is the panic value raised on a fatal contract violation.
// The hart runtime recovers it, prints it and parks the offending hart.
type Violation struct {
	Op    string // protocol step: "Initialize", "claim", ...
	Index int    // section index, -1 when not applicable
	Err   error  // one of the sentinels above
}

// Error implements error.
func (v *Violation) Error() string {
	if v.Index < 0 {
		return fmt.Sprintf("shared: %s: %v", v.Op, v.Err)
	}

	return fmt.Sprintf("shared: %s(%d): %v", v.Op, v.Index, v.Err)
}

// Unwrap exposes the sentinel to errors.Is.
func (v *Violation) Unwrap() error { return v.Err }

// violate halts the calling hart.
func violate(op string, index int, err error) {
	panic(&Violation{Op: op, Index: index, Err: err})
}
