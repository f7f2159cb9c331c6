// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep kernels minimal by delegating nil/side/parity checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing on success.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Side → Parity).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSide – Ensures m is non-nil and has exactly the given side.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSide(m *Matrix, side int) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSide", err)
	}
	if m.side != side {
		return validatorErrorf("ValidateSide", ErrDimensionMismatch)
	}

	return nil
}

// ValidateKernel – Composite: NotNil → odd side.
//
// Errors: ErrNilMatrix, ErrEvenKernel.
// Complexity: O(1).
func ValidateKernel(k *Matrix) error {
	if err := ValidateNotNil(k); err != nil {
		return validatorErrorf("ValidateKernel", err)
	}
	if k.side%2 == 0 {
		return validatorErrorf("ValidateKernel", ErrEvenKernel)
	}

	return nil
}
