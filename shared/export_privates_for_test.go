// SPDX-License-Identifier: MIT

package shared

// Splits exposes how many times the matrix was partitioned.
func (c *Coordinator) Splits() int { return int(c.splits.Load()) }

// Rearm clears the "initializing" claim without touching the slots, so a
// test can drive Initialize into its already-split assertion.
func (c *Coordinator) Rearm() { c.initializing.Store(false) }
