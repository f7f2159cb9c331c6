// SPDX-License-Identifier: MIT

package matrix

import "fmt"

// Section is an exclusively owned mutable view over a contiguous run of a
// Matrix's storage.
//   - index is the section number (0 ≤ index < sections).
//   - rows/cols are the extents of the full matrix, needed to recover the
//     true (row, col) of element i from index*len(data) + i.
//
// A Section is not safe for concurrent use; it is meant to be owned by one
// hart at a time.
type Section struct {
	data       []Number
	rows, cols int
	index      int
}

// Index returns the section number.
func (s *Section) Index() int { return s.index }

// Len returns the number of elements in the section.
func (s *Section) Len() int { return len(s.data) }

// Offset returns the linear offset of the first element in the full matrix.
func (s *Section) Offset() int { return s.index * len(s.data) }

// Coord maps a section-local offset to its (row, col) in the full matrix.
// Complexity: O(1).
func (s *Section) Coord(i int) (row, col int) {
	g := s.Offset() + i

	return g / s.cols, g % s.cols
}

// At returns the i-th element of the section or ErrOutOfRange.
func (s *Section) At(i int) (Number, error) {
	if i < 0 || i >= len(s.data) {
		return 0, fmt.Errorf("Section.At(%d): %w", i, ErrOutOfRange)
	}

	return s.data[i], nil
}

// Values returns a copy of the section's elements.
func (s *Section) Values() []Number {
	out := make([]Number, len(s.data))
	copy(out, s.data)

	return out
}

// Apply replaces every element with f(row, col, v), visiting elements in
// storage order. It is the generic form of the kernels below.
// Complexity: O(len) calls of f.
func (s *Section) Apply(f func(row, col int, v Number) Number) {
	var row, col int
	for i := range s.data {
		row, col = s.Coord(i)
		s.data[i] = f(row, col, s.data[i])
	}
}
