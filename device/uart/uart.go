// Package uart drives an NS16550A-compatible serial port over an mmio.Bus.
package uart

import (
	"io"

	"github.com/katalvlaran/hartmatrix/device"
	"github.com/katalvlaran/hartmatrix/device/mmio"
	"github.com/katalvlaran/hartmatrix/spin"
)

// Base is the physical address of UART0 on the virt board.
const Base uintptr = 0x1000_0000

// Register offsets.
const (
	RegTHR uintptr = 0 // transmit holding (write), divisor latch low with DLAB
	RegIER uintptr = 1 // interrupt enable, divisor latch high with DLAB
	RegFCR uintptr = 2 // FIFO control
	RegLCR uintptr = 3 // line control
	RegLSR uintptr = 5 // line status

	// RegDLL and RegDLM alias THR and IER while LCR.DLAB is set.
	RegDLL = RegTHR
	RegDLM = RegIER
)

// Register bits.
const (
	LCRWordLen8 uint8 = 0b11   // 8 data bits, 1 stop bit, no parity
	LCRDLAB     uint8 = 1 << 7 // divisor latch access
	FCREnable   uint8 = 1 << 0
	IERRxReady  uint8 = 1 << 0
	LSRTHRE     uint8 = 1 << 5 // transmit holding register empty
	LSRTEMT     uint8 = 1 << 6 // transmitter idle
)

// Divisor for 2400 baud from a 22.729 MHz reference clock.
const Divisor uint16 = 592

// UART is a polled transmitter. It is not safe for concurrent use; the
// console serializes access.
type UART struct {
	bus   mmio.Bus
	ready bool
}

var _ device.Device = (*UART)(nil)

// New returns a driver for the port behind bus. Call Init before Write.
func New(bus mmio.Bus) *UART {
	return &UART{bus: bus}
}

// Init programs 8N1 framing, enables the FIFO and receive interrupts, and
// loads the baud divisor through the divisor latch.
func (u *UART) Init() error {
	u.bus.Store8(RegLCR, LCRWordLen8)
	u.bus.Store8(RegFCR, FCREnable)
	u.bus.Store8(RegIER, IERRxReady)

	u.bus.Store8(RegLCR, LCRWordLen8|LCRDLAB)
	u.bus.Store8(RegDLL, uint8(Divisor&0xFF))
	u.bus.Store8(RegDLM, uint8(Divisor>>8))
	u.bus.Store8(RegLCR, LCRWordLen8)
	u.ready = true

	return nil
}

// WriteByte spins until the holding register is empty, then transmits c.
func (u *UART) WriteByte(c byte) error {
	if !u.ready {
		return device.ErrNotInitialized
	}
	spin.Until(func() bool { return u.bus.Load8(RegLSR)&LSRTHRE != 0 })
	u.bus.Store8(RegTHR, c)

	return nil
}

// Write transmits p byte by byte.
func (u *UART) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := u.WriteByte(c); err != nil {
			return i, err
		}
	}

	return len(p), nil
}

// NewHosted wires a UART to a simulated register window whose transmitter
// is always idle and whose THR forwards every byte to w. Write errors from
// w are dropped, as a real line would drop them.
func NewHosted(w io.Writer) (*UART, *mmio.Sim) {
	sim := mmio.NewSim(Base, 8)
	sim.OnLoad(RegLSR, func() uint32 { return uint32(LSRTHRE | LSRTEMT) })
	sim.OnStore(RegTHR, func(v uint32) {
		if sim.Load8(RegLCR)&LCRDLAB != 0 {
			return // divisor latch write, not a character
		}
		_, _ = w.Write([]byte{byte(v)})
	})

	return New(sim), sim
}
