package mmio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hartmatrix/device/mmio"
)

func TestSim_ByteLanesAreIndependent(t *testing.T) {
	s := mmio.NewSim(0x1000_0000, 8)
	s.Store8(0, 0x11)
	s.Store8(1, 0x22)
	s.Store8(3, 0x44)

	assert.Equal(t, uint8(0x22), s.Load8(1))
	assert.Equal(t, uint32(0x44002211), s.Load32(0))
	assert.Equal(t, uintptr(0x1000_0000), s.Base())
}

func TestSim_Hooks(t *testing.T) {
	var seen []uint32
	s := mmio.NewSim(0, 8).
		OnLoad(5, func() uint32 { return 0x60 }).
		OnStore(4, func(v uint32) { seen = append(seen, v) })

	assert.Equal(t, uint8(0x60), s.Load8(5))
	s.Store8(4, 'h')
	s.Store32(4, 7)
	assert.Equal(t, []uint32{'h', 7}, seen)
	assert.Equal(t, uint32(7), s.Load32(4), "stores are latched before the hook runs")
}

func TestSim_BusFault(t *testing.T) {
	s := mmio.NewSim(0x2000, 4)
	require.PanicsWithValue(t, "mmio: bus fault at 0x2004", func() { s.Load32(4) })
}
