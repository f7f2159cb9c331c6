// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by Matrix, Section and the coordinator.
package matrix

// Number is the element type of every matrix. Arithmetic wraps on overflow,
// exactly like the fixed-width registers of the target.
type Number = int32

// Layout describes how a side×side matrix is cut into sections.
// A Layout is valid only when SectionSize()*Sections == Size().
type Layout struct {
	Side     int // row and column count of the matrix
	Sections int // number of disjoint sections (one per hart)
}

// Size returns Side², the element count of the matrix.
// Complexity: O(1).
func (l Layout) Size() int { return l.Side * l.Side }

// SectionSize returns the number of elements in each section.
// Complexity: O(1).
func (l Layout) SectionSize() int {
	if l.Sections <= 0 {
		return 0
	}

	return l.Size() / l.Sections
}

// Validate reports ErrBadShape for a non-positive side and ErrBadLayout when
// the sections would not partition the matrix exactly.
// Complexity: O(1).
func (l Layout) Validate() error {
	if l.Side <= 0 {
		return validatorErrorf("Layout.Validate", ErrBadShape)
	}
	if l.Sections <= 0 || l.SectionSize()*l.Sections != l.Size() {
		return validatorErrorf("Layout.Validate", ErrBadLayout)
	}

	return nil
}
