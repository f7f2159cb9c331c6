// SPDX-License-Identifier: MIT

// Package matrix - section-level compute kernels.
//
// Purpose:
//   - Multiply and Convolute accumulate into the receiving section only and
//     read only from immutable inputs, so any number of sections can run on
//     different harts at once with no synchronization.
//
// Complexity quicksheet:
//   - Multiply: O(len·side); Convolute: O(len·kside²).

package matrix

import "fmt"

const (
	opMultiply  = "Multiply"
	opConvolute = "Convolute"
)

func kernelErrorf(op string, index int, err error) error {
	return fmt.Errorf("Section[%d].%s: %w", index, op, err)
}

// Multiply accumulates the matrix product a×b into the section:
// out[r,c] += Σ_k a[r,k]·b[k,c].
// MAIN DESCRIPTION:
//   - Standard dot-product accumulation over the shared dimension.
//
// Implementation:
//   - Stage 1: validate that a and b have the side of the output matrix.
//   - Stage 2: for each element recover (r, c) and accumulate the dot product.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Determinism:
//   - Fixed k order; wrapping int32 arithmetic gives bit-identical results
//     regardless of how the output is partitioned.
//
// Complexity:
//   - Time O(len·side), Space O(1).
func (s *Section) Multiply(a, b *Matrix) error {
	if err := ValidateSide(a, s.cols); err != nil {
		return kernelErrorf(opMultiply, s.index, err)
	}
	if err := ValidateSide(b, s.rows); err != nil {
		return kernelErrorf(opMultiply, s.index, err)
	}

	n := s.cols
	var (
		i, k, row, col int
		acc            Number
	)
	for i = range s.data {
		row, col = s.Coord(i)
		acc = 0
		for k = 0; k < n; k++ {
			acc += a.data[row*n+k] * b.data[k*n+col]
		}
		s.data[i] += acc
	}

	return nil
}

// Convolute accumulates a zero-padded 2D correlation of a with kernel:
// out[r,c] += Σ_{k,l} a[r+k-ry, c+l-rx]·kernel[k,l], where ry = rx =
// (kernel side - 1) / 2.
// MAIN DESCRIPTION:
//   - The kernel is centered on each output element.
//
// Implementation:
//   - Stage 1: validate a has the output side and kernel has an odd side.
//   - Stage 2: for each element sum every in-bounds tap.
//
// Behavior highlights:
//   - Taps whose input coordinate falls outside a contribute zero; they are
//     skipped, never wrapped or clamped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrEvenKernel.
//
// Complexity:
//   - Time O(len·kside²), Space O(1).
func (s *Section) Convolute(a, kernel *Matrix) error {
	if err := ValidateSide(a, s.cols); err != nil {
		return kernelErrorf(opConvolute, s.index, err)
	}
	if err := ValidateKernel(kernel); err != nil {
		return kernelErrorf(opConvolute, s.index, err)
	}

	ks := kernel.side
	radius := (ks - 1) / 2
	var (
		i, k, l, row, col, y, x int
		acc                     Number
	)
	for i = range s.data {
		row, col = s.Coord(i)
		acc = 0
		for k = 0; k < ks; k++ {
			y = row + k - radius
			if y < 0 || y >= s.rows {
				continue // whole kernel row lies in the padding
			}
			for l = 0; l < ks; l++ {
				x = col + l - radius
				if x < 0 || x >= s.cols {
					continue
				}
				acc += a.data[y*s.cols+x] * kernel.data[k*ks+l]
			}
		}
		s.data[i] += acc
	}

	return nil
}
