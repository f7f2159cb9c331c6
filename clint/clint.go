// Package clint reads the free-running machine timer.
//
// The timer is a 64-bit counter at a fixed offset of the core-local
// interruptor, shared by every hart and incremented every 100 ns. It is read
// as two 32-bit halves, so a reader must retry when the low half rolls over
// between the two reads.
package clint

import (
	"time"

	"github.com/katalvlaran/hartmatrix/device/mmio"
)

// Memory map of the core-local interruptor on the virt board.
const (
	Base        uintptr = 0x0200_0000
	MTimeOffset uintptr = 0xBFF8
	Size                = 0x1_0000
)

// TickPeriod is the duration of one mtime tick (10 MHz).
const TickPeriod = 100 * time.Nanosecond

// Counter is a monotonic tick source shared by all harts.
type Counter interface {
	Ticks() uint64
}

// Duration converts a tick count to wall time.
func Duration(ticks uint64) time.Duration {
	return time.Duration(ticks) * TickPeriod
}

// Elapsed returns the wall time since start, a value previously read from c.
func Elapsed(c Counter, start uint64) time.Duration {
	return Duration(c.Ticks() - start)
}

// MTime reads the mtime register through a bus.
type MTime struct {
	bus mmio.Bus
}

var _ Counter = (*MTime)(nil)

// NewMTime returns a reader for the mtime register behind bus, where bus is
// the register window of the whole interruptor.
func NewMTime(bus mmio.Bus) *MTime {
	return &MTime{bus: bus}
}

// Ticks combines both halves, re-reading when the high half changed in
// between.
func (m *MTime) Ticks() uint64 {
	hi := m.bus.Load32(MTimeOffset + 4)
	for {
		lo := m.bus.Load32(MTimeOffset)
		hi2 := m.bus.Load32(MTimeOffset + 4)
		if hi2 == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
		hi = hi2
	}
}

// NewHosted maps a simulated interruptor whose mtime register follows src,
// and returns a reader for it.
func NewHosted(src Counter) (*MTime, *mmio.Sim) {
	sim := mmio.NewSim(Base, Size)
	sim.OnLoad(MTimeOffset, func() uint32 { return uint32(src.Ticks()) })
	sim.OnLoad(MTimeOffset+4, func() uint32 { return uint32(src.Ticks() >> 32) })

	return NewMTime(sim), sim
}
