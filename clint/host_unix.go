//go:build linux || darwin

package clint

import "golang.org/x/sys/unix"

// Host counts 100 ns ticks of the host's monotonic clock.
type Host struct{}

var _ Counter = Host{}

// Ticks implements Counter.
func (Host) Ticks() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic("clint: CLOCK_MONOTONIC unavailable: " + err.Error())
	}

	return uint64(ts.Nano()) / uint64(TickPeriod)
}
