// SPDX-License-Identifier: MIT

// Package shared coordinates several harts that cooperatively fill one
// matrix without a scheduler, a mutex or any blocking primitive.
//
// Protocol (one round):
//
//  1. Every hart calls Initialize. The first to flip "initializing" splits
//     the matrix into sections and then publishes "initialized"; the others
//     return at once.
//  2. Every hart calls Compute with its own section index. Compute spins on
//     "initialized", takes exclusive ownership of the section with a CAS on its
//     availability flag, runs the callback, puts the section back and bumps
//     the completion counter.
//  3. Readers call Wait, Read or String, which spin until the counter reaches
//     the number of participants. Nothing may read the aggregate earlier.
//
// Happens-before:
//   - initialized.Store(true) publishes the slot array built by the winner;
//     every claim loads initialized before touching a slot.
//   - Each release stores its slot and then increments the counter; a reader
//     that observes counter == participants observes every release before it.
//
// Failure semantics:
//   - Contract violations (double claim, bad index, late claim, re-split)
//     panic with a *Violation and halt the violating hart. They are never
//     retried.
//   - Spins have no timeout. A hart that never releases its section stalls
//     every reader forever.
//
// A Coordinator supports exactly one round unless Reset is called between
// rounds.
package shared

import (
	"strings"
	"sync/atomic"

	"github.com/katalvlaran/hartmatrix/matrix"
	"github.com/katalvlaran/hartmatrix/spin"
)

const (
	opInitialize = "Initialize"
	opClaim      = "claim"
	noIndex      = -1
)

// Coordinator wraps one accumulator matrix shared by all harts.
// The zero value is not usable; construct with New.
type Coordinator struct {
	m            *matrix.Matrix
	layout       matrix.Layout
	participants int

	initializing atomic.Bool // someone has won the right to split
	initialized  atomic.Bool // the split is complete and published

	slots     []atomic.Pointer[matrix.Section] // nil while a section is owned
	available []atomic.Bool                    // true = claimable this round
	tickets   atomic.Int64                     // claims admitted this round
	completed atomic.Int64                     // releases this round
	round     atomic.Int64                     // bumped by Reset
	splits    atomic.Int32                     // times the matrix was partitioned
}

// New wraps m for a run split into the given number of sections, whose
// completion barrier opens after participants releases.
// MAIN DESCRIPTION:
//   - Validate the layout up front so Initialize can never fail on shape.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrBadLayout, ErrBadParticipants.
//
// Complexity:
//   - Time O(sections), Space O(sections).
func New(m *matrix.Matrix, sections, participants int) (*Coordinator, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}
	layout := matrix.Layout{Side: m.Side(), Sections: sections}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if participants < 1 || participants > sections {
		return nil, ErrBadParticipants
	}

	c := &Coordinator{
		m:            m,
		layout:       layout,
		participants: participants,
		slots:        make([]atomic.Pointer[matrix.Section], sections),
		available:    make([]atomic.Bool, sections),
	}
	for i := range c.available {
		c.available[i].Store(true)
	}

	return c, nil
}

// Layout returns the partition the coordinator was built with.
func (c *Coordinator) Layout() matrix.Layout { return c.layout }

// Participants returns the barrier target.
func (c *Coordinator) Participants() int { return c.participants }

// Initialize partitions the matrix exactly once, whoever calls it first.
// Implementation:
//   - Stage 1: CAS initializing false→true; losers return without side effects.
//   - Stage 2: the winner asserts no section exists yet, splits, fills slots.
//   - Stage 3: the winner publishes initialized=true.
//
// Behavior highlights:
//   - Losers may return before the split is visible. Compute spins on
//     initialized for that reason; nothing else may touch the slots.
//
// Complexity:
//   - Time O(sections) for the winner, O(1) for everyone else.
func (c *Coordinator) Initialize() {
	if !c.initializing.CompareAndSwap(false, true) {
		return // another hart owns the initialization
	}
	for i := range c.slots {
		if c.slots[i].Load() != nil {
			violate(opInitialize, noIndex, ErrAlreadyInitialized)
		}
	}
	sections, err := c.m.Split(c.layout.Sections)
	if err != nil {
		violate(opInitialize, noIndex, err) // layout was validated in New
	}
	for i, s := range sections {
		c.slots[i].Store(s)
	}
	c.splits.Add(1)
	c.initialized.Store(true)
}

// Initialized reports whether the split has been published.
func (c *Coordinator) Initialized() bool { return c.initialized.Load() }

// claim spins until the sections are published, then takes section index.
// A failed CAS means two callers asked for the same index: that is fatal for
// the caller that lost. A claim beyond the participant count is fatal too and
// leaves the section untouched, so the open barrier stays open.
func (c *Coordinator) claim(index int) *matrix.Section {
	if index < 0 || index >= len(c.slots) {
		violate(opClaim, index, ErrSectionIndex)
	}
	spin.Until(c.initialized.Load)
	if !c.available[index].CompareAndSwap(true, false) {
		violate(opClaim, index, ErrSectionClaimed)
	}
	if !c.admit() {
		c.available[index].Store(true)
		violate(opClaim, index, ErrRoundComplete)
	}
	s := c.slots[index].Swap(nil) // leave a hole while the section is owned
	if s == nil {
		violate(opClaim, index, ErrSectionClaimed)
	}

	return s
}

// admit reserves one of the round's completion tickets, one per participant.
func (c *Coordinator) admit() bool {
	for {
		n := c.tickets.Load()
		if n >= int64(c.participants) {
			return false
		}
		if c.tickets.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release puts the section back and counts the completion. It leaves
// available[index] false: only Reset re-arms a section.
// Every release holds a ticket, so completed never exceeds participants.
func (c *Coordinator) release(s *matrix.Section, index int) {
	c.slots[index].Store(s)
	c.completed.Add(1)
}

// Compute claims section index, applies fn to it in place, and releases it.
// It is the only way a hart mutates the shared matrix.
// Panics:
//   - *Violation on a bad index, when the section is already claimed, or
//     when every participant of the round has already been admitted.
func (c *Coordinator) Compute(fn func(*matrix.Section), index int) {
	s := c.claim(index)
	fn(s)
	c.release(s, index)
}

// Completed returns the number of releases in the current round.
func (c *Coordinator) Completed() int { return int(c.completed.Load()) }

// Done reports whether the completion barrier is open.
func (c *Coordinator) Done() bool { return c.completed.Load() == int64(c.participants) }

// Wait spins until every participant has released its section.
func (c *Coordinator) Wait() { spin.Until(c.Done) }

// Read waits for the completion barrier and then hands fn read access to the
// whole matrix. fn must not retain or mutate the matrix.
func (c *Coordinator) Read(fn func(*matrix.Matrix)) {
	c.Wait()
	fn(c.m)
}

// Snapshot waits for the barrier and returns a copy of the result.
func (c *Coordinator) Snapshot() *matrix.Matrix {
	var out *matrix.Matrix
	c.Read(func(m *matrix.Matrix) { out = m.Clone() })

	return out
}

// String waits for the barrier and formats the result. This is the only safe
// print path for the aggregate.
func (c *Coordinator) String() string {
	var b strings.Builder
	c.Read(func(m *matrix.Matrix) { b.WriteString(m.String()) })

	return b.String()
}

// Round returns the number of completed Reset calls.
func (c *Coordinator) Round() int { return int(c.round.Load()) }

// WaitRound spins until Reset has been called at least r times.
func (c *Coordinator) WaitRound(r int) {
	spin.Until(func() bool { return c.round.Load() >= int64(r) })
}

// Reset re-arms the coordinator for another round.
// Implementation:
//   - Stage 1: refuse unless the barrier is open and every slot is back.
//   - Stage 2: zero the accumulator, re-arm every availability flag, clear
//     the counter.
//   - Stage 3: bump the round so harts parked in WaitRound may claim again.
//
// Behavior highlights:
//   - Exactly one hart may call Reset, while every other hart is outside
//     Compute (typically spinning in WaitRound).
//
// Errors:
//   - ErrRoundInProgress when called before initialization, before the
//     barrier, or while a section is still owned.
//
// Complexity:
//   - Time O(side²).
func (c *Coordinator) Reset() error {
	if !c.initialized.Load() || !c.Done() {
		return ErrRoundInProgress
	}
	for i := range c.slots {
		if c.slots[i].Load() == nil {
			return ErrRoundInProgress
		}
	}
	for i := range c.slots {
		c.slots[i].Load().Apply(func(_, _ int, _ matrix.Number) matrix.Number { return 0 })
		c.available[i].Store(true)
	}
	c.tickets.Store(0)
	c.completed.Store(0)
	c.round.Add(1)

	return nil
}
