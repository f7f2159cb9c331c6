// Package matrix provides the square integer matrix shared by all harts,
// its partition into disjoint sections, and the two section-level kernels.
//
// The matrix package provides:
//
//   - Matrix, a fixed side×side row-major buffer of Number values.
//   - Section, an exclusively owned mutable window over a contiguous run of
//     that buffer, tagged with its index so each element can recover its
//     (row, col) in the full matrix.
//   - Split, which tiles the storage into equally sized sections with no
//     overlap and no gaps.
//   - Multiply and Convolute, pure functions of immutable inputs and the
//     section's own coordinates. Sections never read each other, so every
//     section may be computed on a different hart at the same time.
//
// Input matrices are read-only after construction and may be read from any
// number of harts without synchronization. The accumulator is only written
// through sections; ownership of those is the business of package shared.
package matrix
