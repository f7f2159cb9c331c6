// SPDX-License-Identifier: MIT

package benchmark

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownWorkload is returned by ParseWorkload.
	ErrUnknownWorkload = errors.New("benchmark: unknown workload")

	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("benchmark: unknown mode")
)

// Workload selects the kernel every hart runs on its section.
type Workload int

const (
	Multiplication Workload = iota // C += A·B
	Convolution                    // C += A ⋆ K, zero padded
)

func (w Workload) String() string {
	switch w {
	case Multiplication:
		return "multiplication"
	case Convolution:
		return "convolution"
	default:
		return fmt.Sprintf("Workload(%d)", int(w))
	}
}

// Banner is the first line hart 0 prints in parallel mode.
func (w Workload) Banner() string {
	if w == Convolution {
		return "Convolution"
	}

	return "Matrix multiplication"
}

// ParseWorkload accepts the full name or the short forms "mult" and "conv".
func ParseWorkload(s string) (Workload, error) {
	switch strings.ToLower(s) {
	case "multiplication", "mult", "mul":
		return Multiplication, nil
	case "convolution", "conv":
		return Convolution, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownWorkload, s)
}

// Mode selects how the work is spread over harts.
type Mode int

const (
	Parallel   Mode = iota // one section per hart, joined by the completion barrier
	Sequential             // hart 0 alone, a single section over the whole matrix
)

func (m Mode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "parallel" or "sequential" (or "par"/"seq").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "parallel", "par":
		return Parallel, nil
	case "sequential", "seq":
		return Sequential, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
