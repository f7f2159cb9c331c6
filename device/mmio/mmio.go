// Package mmio models memory-mapped register access.
//
// Drivers talk to a Bus with offsets relative to the device base address.
// On hardware a Bus is a volatile pointer at a fixed physical address; on a
// hosted target Sim provides a register file with load/store side effects.
package mmio

import (
	"fmt"
	"sync/atomic"
)

// Bus is the register window of one device.
type Bus interface {
	Load8(off uintptr) uint8
	Store8(off uintptr, v uint8)
	Load32(off uintptr) uint32
	Store32(off uintptr, v uint32)
}

// LoadFunc computes the value of a register on every read.
type LoadFunc func() uint32

// StoreFunc observes every write to a register, after it is latched.
type StoreFunc func(v uint32)

// Sim is a hosted register file. Every register is latched in an atomic word,
// so concurrent harts may poll it without a data race.
// Handlers must be installed before the Sim is shared.
type Sim struct {
	base   uintptr
	words  []atomic.Uint32
	loads  map[uintptr]LoadFunc
	stores map[uintptr]StoreFunc
}

var _ Bus = (*Sim)(nil)

// NewSim returns a zeroed register file of size bytes mapped at base.
// size is rounded up to a multiple of 4.
func NewSim(base uintptr, size int) *Sim {
	return &Sim{
		base:   base,
		words:  make([]atomic.Uint32, (size+3)/4),
		loads:  make(map[uintptr]LoadFunc),
		stores: make(map[uintptr]StoreFunc),
	}
}

// Base returns the physical address the window is mapped at.
func (s *Sim) Base() uintptr { return s.base }

// OnLoad makes reads of off return fn() instead of the latched value.
func (s *Sim) OnLoad(off uintptr, fn LoadFunc) *Sim {
	s.loads[off] = fn
	return s
}

// OnStore calls fn after every write to off.
func (s *Sim) OnStore(off uintptr, fn StoreFunc) *Sim {
	s.stores[off] = fn
	return s
}

// word returns the word holding off and the bit shift of off inside it.
// An access outside the window is a bus fault and panics.
func (s *Sim) word(off uintptr) (*atomic.Uint32, uint) {
	i := int(off / 4)
	if i >= len(s.words) {
		panic(fmt.Sprintf("mmio: bus fault at %#x", s.base+off))
	}

	return &s.words[i], uint(off%4) * 8
}

// Load8 reads one byte register.
func (s *Sim) Load8(off uintptr) uint8 {
	if fn, ok := s.loads[off]; ok {
		return uint8(fn())
	}
	w, shift := s.word(off)

	return uint8(w.Load() >> shift)
}

// Store8 writes one byte register without disturbing its neighbours.
func (s *Sim) Store8(off uintptr, v uint8) {
	w, shift := s.word(off)
	mask := uint32(0xFF) << shift
	for {
		old := w.Load()
		if w.CompareAndSwap(old, old&^mask|uint32(v)<<shift) {
			break
		}
	}
	if fn, ok := s.stores[off]; ok {
		fn(uint32(v))
	}
}

// Load32 reads an aligned word register.
func (s *Sim) Load32(off uintptr) uint32 {
	if fn, ok := s.loads[off]; ok {
		return fn()
	}
	w, _ := s.word(off)

	return w.Load()
}

// Store32 writes an aligned word register.
func (s *Sim) Store32(off uintptr, v uint32) {
	w, _ := s.word(off)
	w.Store(v)
	if fn, ok := s.stores[off]; ok {
		fn(v)
	}
}
