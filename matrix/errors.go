// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Constructors and kernels return these sentinels and tests check them
// via errors.Is. Panics are reserved for programmer errors.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency. Call sites add
// context with fmt.Errorf("Op: %w", ErrX); callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> layout -> dimension mismatch -> kernel parity.

var (
	// ErrNilMatrix indicates that a nil *Matrix or *Section was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrBadShape is returned when a side is non-positive or the supplied
	// data length is not side².
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row, col or element) is outside
	// valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrBadLayout signals that the requested number of sections does not
	// tile the matrix exactly (SectionSize × Sections != Size).
	ErrBadLayout = errors.New("matrix: sections do not tile the matrix")

	// ErrDimensionMismatch indicates incompatible operand sides, e.g. a
	// multiplicand whose side differs from the output matrix.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrEvenKernel rejects convolution kernels with an even side: such a
	// kernel has no center element.
	ErrEvenKernel = errors.New("matrix: kernel side must be odd")
)
