// SPDX-License-Identifier: MIT

// Package matrix - square row-major storage & safe accessors.
//
// Purpose:
//   - Provide a flat row-major buffer with the explicit index formula r*side + c.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//   - Keep formatting deterministic so sequential and partitioned runs print
//     byte-identical results.
//
// Complexity quicksheet:
//   - NewZeros/FromSlice: O(side²); At: O(1); Clone/Equal/String: O(side²); Split: O(sections).

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNew    = "NewZeros"
	ctxFrom   = "FromSlice"
	ctxKernel = "NewKernel"
	ctxAt     = "At"
	ctxSplit  = "Split"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// matrixErrorf attaches an operation tag to a sentinel error.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("Matrix.%s: %w", tag, err)
}

// Matrix is a side×side row-major grid of Number values.
//   - side holds both the row and the column count.
//   - data is a flat buffer of length side² (offset = r*side + c).
type Matrix struct {
	side int      // rows == cols
	data []Number // contiguous row-major storage (len == side*side)
}

var _ fmt.Stringer = (*Matrix)(nil)

// NewZeros creates a side×side zero matrix.
// MAIN DESCRIPTION:
//   - Constructor for the accumulator matrix of a run.
//
// Implementation:
//   - Stage 1: validate side > 0; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrBadShape (shape contract violation).
//
// Complexity:
//   - Time O(side²), Space O(side²).
func NewZeros(side int) (*Matrix, error) {
	if side <= 0 {
		return nil, matrixErrorf(ctxNew, ErrBadShape)
	}

	return &Matrix{side: side, data: make([]Number, side*side)}, nil
}

// FromSlice creates a side×side matrix holding a copy of data (row-major).
// MAIN DESCRIPTION:
//   - Constructor for immutable input matrices.
//
// Implementation:
//   - Stage 1: validate side > 0 and len(data) == side².
//   - Stage 2: copy data so later mutation of the caller's slice cannot leak in.
//
// Errors:
//   - ErrBadShape when side is non-positive or the length is wrong.
//
// Complexity:
//   - Time O(side²), Space O(side²).
func FromSlice(side int, data []Number) (*Matrix, error) {
	if side <= 0 || len(data) != side*side {
		return nil, matrixErrorf(ctxFrom, ErrBadShape)
	}
	buf := make([]Number, len(data))
	copy(buf, data)

	return &Matrix{side: side, data: buf}, nil
}

// NewKernel creates a convolution kernel. Kernels with an even side have no
// center tap and are rejected with ErrEvenKernel.
// Complexity: O(side²).
func NewKernel(side int, values []Number) (*Matrix, error) {
	k, err := FromSlice(side, values)
	if err != nil {
		return nil, err
	}
	if err = ValidateKernel(k); err != nil {
		return nil, matrixErrorf(ctxKernel, err)
	}

	return k, nil
}

// Side returns the row (and column) count.
// Complexity: O(1).
func (m *Matrix) Side() int { return m.side }

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.side }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.side }

// Size returns side², the number of elements.
func (m *Matrix) Size() int { return len(m.data) }

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Matrix) At(row, col int) (Number, error) {
	if row < 0 || row >= m.side || col < 0 || col >= m.side {
		return 0, fmt.Errorf("Matrix.%s(%d,%d): %w", ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[row*m.side+col], nil
}

// Values returns a copy of the row-major storage.
// Complexity: O(side²).
func (m *Matrix) Values() []Number {
	out := make([]Number, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy of the matrix.
// Complexity: O(side²).
func (m *Matrix) Clone() *Matrix {
	return &Matrix{side: m.side, data: m.Values()}
}

// Equal reports whether o has the same side and bit-identical contents.
// Complexity: O(side²).
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.side != o.side {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// String renders one bracketed row per line.
// Determinism:
//   - Fixed traversal order; the same contents always print the same bytes.
//
// Complexity:
//   - Time O(side²), Space O(side²) for formatting.
func (m *Matrix) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.side; i++ { // iterate rows deterministically
		b.WriteString(_fmtRowOpen)
		base = i * m.side
		for j = 0; j < m.side; j++ {
			b.WriteString(strconv.FormatInt(int64(m.data[base+j]), 10))
			if j+1 < m.side {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Split cuts the storage into n equally sized, contiguous sections.
// MAIN DESCRIPTION:
//   - Produce the exclusive views handed out to harts.
//
// Implementation:
//   - Stage 1: validate the layout (side², n) tiles exactly.
//   - Stage 2: slice data[i*ss : (i+1)*ss] for each i, capping capacity so an
//     append on one section can never spill into its neighbour.
//
// Behavior highlights:
//   - Sections alias the matrix storage; writes through a section are
//     visible in the matrix.
//   - Calling Split twice yields aliasing views. Callers that hand sections
//     to several harts must split exactly once (see package shared).
//
// Errors:
//   - ErrBadLayout when n does not divide side².
//
// Complexity:
//   - Time O(n), Space O(n); no element copies.
func (m *Matrix) Split(n int) ([]*Section, error) {
	layout := Layout{Side: m.side, Sections: n}
	if err := layout.Validate(); err != nil {
		return nil, matrixErrorf(ctxSplit, err)
	}
	ss := layout.SectionSize()
	sections := make([]*Section, n)
	for i := 0; i < n; i++ {
		lo, hi := i*ss, (i+1)*ss
		sections[i] = &Section{
			data:  m.data[lo:hi:hi],
			rows:  m.side,
			cols:  m.side,
			index: i,
		}
	}

	return sections, nil
}
