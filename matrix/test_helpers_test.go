// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures shared by kernel and split tests.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/hartmatrix/matrix"
)

// seq returns [0, 1, ..., n-1].
func seq(n int) []matrix.Number {
	out := make([]matrix.Number, n)
	for i := range out {
		out[i] = matrix.Number(i)
	}

	return out
}

// MustFrom builds a side×side matrix from data or fails the test.
func MustFrom(t testing.TB, side int, data []matrix.Number) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromSlice(side, data)
	if err != nil {
		t.Fatalf("FromSlice(%d): %v", side, err)
	}

	return m
}

// MustZeros allocates a side×side zero matrix or fails the test.
func MustZeros(t testing.TB, side int) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewZeros(side)
	if err != nil {
		t.Fatalf("NewZeros(%d): %v", side, err)
	}

	return m
}

// MustSplit splits m into n sections or fails the test.
func MustSplit(t testing.TB, m *matrix.Matrix, n int) []*matrix.Section {
	t.Helper()
	s, err := m.Split(n)
	if err != nil {
		t.Fatalf("Split(%d): %v", n, err)
	}

	return s
}

// naiveProduct is an independent reference: plain triple loop on ints.
func naiveProduct(side int, a, b []matrix.Number) []matrix.Number {
	out := make([]matrix.Number, side*side)
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			var acc matrix.Number
			for k := 0; k < side; k++ {
				acc += a[r*side+k] * b[k*side+c]
			}
			out[r*side+c] = acc
		}
	}

	return out
}
