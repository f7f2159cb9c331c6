//go:build !(linux || darwin)

package clint

import "time"

var epoch = time.Now()

// Host counts 100 ns ticks of the runtime's monotonic clock.
type Host struct{}

var _ Counter = Host{}

// Ticks implements Counter.
func (Host) Ticks() uint64 {
	return uint64(time.Since(epoch) / TickPeriod)
}
