// SPDX-License-Identifier: MIT

// Package spin provides the busy-wait primitives every cross-hart protocol in
// this module is built on.
//
// Purpose:
//   - A boolean spinlock (compare-and-swap loop) for short critical sections.
//   - Until, an unbounded wait on a condition published by another hart.
//
// Behavior highlights:
//   - Nothing here parks, sleeps or times out. A holder that never releases
//     stalls every waiter forever.
//   - No fairness: a waiter may lose every race and starve.
//   - Every loop body calls Relax, so goroutine harts keep making progress
//     when there are fewer OS threads than harts.
package spin

import (
	"runtime"
	"sync"
	"sync/atomic"
)

const panicUnlockUnheld = "spin: Unlock of unlocked Lock"

// Relax is executed once per failed spin iteration.
// On a hosted target it yields the processor to other goroutines.
func Relax() { runtime.Gosched() }

// Lock is a test-and-set spinlock. The zero value is unlocked.
// A Lock must not be copied after first use.
type Lock struct {
	held atomic.Bool
}

var _ sync.Locker = (*Lock)(nil)

// Lock spins until the lock is acquired.
// Complexity: unbounded under contention.
func (l *Lock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		Relax()
	}
}

// TryLock makes a single acquisition attempt.
func (l *Lock) TryLock() bool {
	return l.held.CompareAndSwap(false, true)
}

// Unlock releases the lock. Releasing a lock that is not held is a
// programmer error and panics.
func (l *Lock) Unlock() {
	if !l.held.Swap(false) {
		panic(panicUnlockUnheld)
	}
}

// Held reports whether some hart currently owns the lock.
func (l *Lock) Held() bool {
	return l.held.Load()
}

// Until spins until cond returns true.
// cond must read state through sync/atomic so the spinning hart observes
// the publishing store.
func Until(cond func() bool) {
	for !cond() {
		Relax()
	}
}
