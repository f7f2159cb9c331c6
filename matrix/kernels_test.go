package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hartmatrix/matrix"
)

// product4 is A×A for A = [0..15] as a 4×4 row-major matrix.
var product4 = []matrix.Number{
	56, 62, 68, 74,
	152, 174, 196, 218,
	248, 286, 324, 362,
	344, 398, 452, 506,
}

// conv4 is A = [0..15] (4×4) correlated with K = [0..8] (3×3), zero padded.
var conv4 = []matrix.Number{
	73, 121, 154, 103,
	171, 258, 294, 186,
	279, 402, 438, 270,
	139, 187, 202, 113,
}

func TestMultiply_SingleSection(t *testing.T) {
	a := MustFrom(t, 4, seq(16))
	out := MustZeros(t, 4)
	for _, s := range MustSplit(t, out, 1) {
		require.NoError(t, s.Multiply(a, a))
	}
	assert.Equal(t, product4, out.Values())
	assert.Equal(t, naiveProduct(4, seq(16), seq(16)), out.Values())
}

// TestMultiply_PartitionedIsBitIdentical computes the product under every
// valid partition and compares against the single-section result.
func TestMultiply_PartitionedIsBitIdentical(t *testing.T) {
	a := MustFrom(t, 4, seq(16))
	want := MustZeros(t, 4)
	require.NoError(t, MustSplit(t, want, 1)[0].Multiply(a, a))

	for _, n := range []int{2, 4, 8, 16} {
		out := MustZeros(t, 4)
		for _, s := range MustSplit(t, out, n) {
			require.NoError(t, s.Multiply(a, a))
		}
		assert.Truef(t, want.Equal(out), "n=%d:\n%s", n, out)
	}
}

func TestMultiply_Accumulates(t *testing.T) {
	a := MustFrom(t, 2, []matrix.Number{1, 0, 0, 1})
	out := MustFrom(t, 2, []matrix.Number{10, 10, 10, 10})
	require.NoError(t, MustSplit(t, out, 2)[0].Multiply(a, a))
	assert.Equal(t, []matrix.Number{11, 10, 10, 10}, out.Values())
}

func TestMultiply_DimensionMismatch(t *testing.T) {
	out := MustZeros(t, 4)
	s := MustSplit(t, out, 4)[0]
	small := MustFrom(t, 2, seq(4))
	a := MustFrom(t, 4, seq(16))

	require.ErrorIs(t, s.Multiply(small, a), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, s.Multiply(a, small), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, s.Multiply(nil, a), matrix.ErrNilMatrix)
}

func TestConvolute_ZeroPadding(t *testing.T) {
	a := MustFrom(t, 4, seq(16))
	k, err := matrix.NewKernel(3, seq(9))
	require.NoError(t, err)

	out := MustZeros(t, 4)
	for _, s := range MustSplit(t, out, 4) {
		require.NoError(t, s.Convolute(a, k))
	}
	assert.Equal(t, conv4, out.Values())
}

// TestConvolute_BorderMissesExactlyTheOutOfRangeTaps rebuilds the corner and
// edge values from the full 3×3 window of a padded copy of A, so the only
// difference from an interior computation is the taps that hit the padding.
func TestConvolute_BorderMissesExactlyTheOutOfRangeTaps(t *testing.T) {
	a := MustFrom(t, 4, seq(16))
	k, err := matrix.NewKernel(3, seq(9))
	require.NoError(t, err)
	out := MustZeros(t, 4)
	require.NoError(t, MustSplit(t, out, 1)[0].Convolute(a, k))

	// padded is A embedded in a 6×6 zero frame.
	padded := make([]matrix.Number, 36)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			padded[(r+1)*6+(c+1)] = matrix.Number(r*4 + c)
		}
	}
	window := func(r, c int) (full, missing matrix.Number) {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				y, x := r+i-1, c+j-1
				kv := matrix.Number(i*3 + j)
				full += padded[(y+1)*6+(x+1)] * kv
				if y < 0 || y >= 4 || x < 0 || x >= 4 {
					missing += padded[(y+1)*6+(x+1)] * kv
				}
			}
		}
		return full, missing
	}

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			full, missing := window(r, c)
			require.Zero(t, missing, "padding taps must contribute zero")
			got, err := out.At(r, c)
			require.NoError(t, err)
			assert.Equalf(t, full, got, "(%d,%d)", r, c)
		}
	}

	corner, _ := out.At(0, 0)
	interior, _ := out.At(1, 1)
	assert.Equal(t, matrix.Number(73), corner)
	assert.Equal(t, matrix.Number(258), interior)
}

func TestConvolute_PartitionedIsBitIdentical(t *testing.T) {
	a := MustFrom(t, 4, seq(16))
	k, err := matrix.NewKernel(3, seq(9))
	require.NoError(t, err)

	want := MustZeros(t, 4)
	require.NoError(t, MustSplit(t, want, 1)[0].Convolute(a, k))
	for _, n := range []int{2, 8, 16} {
		out := MustZeros(t, 4)
		for _, s := range MustSplit(t, out, n) {
			require.NoError(t, s.Convolute(a, k))
		}
		assert.Truef(t, want.Equal(out), "n=%d", n)
	}
}

func TestConvolute_RejectsBadOperands(t *testing.T) {
	out := MustZeros(t, 4)
	s := MustSplit(t, out, 1)[0]
	a := MustFrom(t, 4, seq(16))
	even := MustFrom(t, 2, seq(4)) // bypasses NewKernel on purpose

	require.ErrorIs(t, s.Convolute(a, even), matrix.ErrEvenKernel)
	require.ErrorIs(t, s.Convolute(MustFrom(t, 3, seq(9)), MustFrom(t, 3, seq(9))), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, s.Convolute(a, nil), matrix.ErrNilMatrix)
}

func TestConvolute_IdentityKernel(t *testing.T) {
	a := MustFrom(t, 5, seq(25))
	id := make([]matrix.Number, 9)
	id[4] = 1
	k, err := matrix.NewKernel(3, id)
	require.NoError(t, err)

	out := MustZeros(t, 5)
	for _, s := range MustSplit(t, out, 5) {
		require.NoError(t, s.Convolute(a, k))
	}
	assert.True(t, a.Equal(out))
}
