// SPDX-License-Identifier: MIT

// Package benchmark runs the partitioned matrix workloads on booted harts.
//
// Every hart executes the same entry. In parallel mode each hart owns the
// section matching its id; hart 0 prints the banner, its own compute time and
// the aggregate, which it can only format once every hart has released.
// In sequential mode a single hart computes the whole matrix as one section.
//
// Inputs are fixed: A = B = [0, Side²) row-major and the kernel is
// [0, KernelSide²).
package benchmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/hartmatrix/clint"
	"github.com/katalvlaran/hartmatrix/console"
	"github.com/katalvlaran/hartmatrix/hart"
	"github.com/katalvlaran/hartmatrix/matrix"
	"github.com/katalvlaran/hartmatrix/shared"
)

// Result is what a finished run leaves behind.
type Result struct {
	Config  Config
	Matrix  *matrix.Matrix  // copy of the aggregate after the last round
	Elapsed []time.Duration // hart 0 compute time, one per round
	Report  hart.Report
}

// runner holds everything the hart entry closes over.
type runner struct {
	cfg     Config
	con     *console.Console
	coord   *shared.Coordinator
	kernel  func(*matrix.Section)
	elapsed []time.Duration // written by hart 0 only
}

// Sequence returns the row-major matrix [0, side²).
func Sequence(side int) []matrix.Number {
	out := make([]matrix.Number, side*side)
	for i := range out {
		out[i] = matrix.Number(i)
	}

	return out
}

// Run boots the harts described by opts and waits for them.
// Implementation:
//   - Stage 1: build the config, the inputs and the zeroed accumulator.
//   - Stage 2: wrap the accumulator in a coordinator (one section per hart).
//   - Stage 3: boot; every hart runs entry.
//   - Stage 4: snapshot the aggregate.
//
// Errors:
//   - configuration errors from NewConfig;
//   - hart.ErrFault when a hart parked, hart.ErrStalled when ctx ended first.
//     The partial Result is returned alongside so the Report is visible.
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	r, err := newRunner(cfg)
	if err != nil {
		return nil, err
	}

	harts := cfg.Harts
	if cfg.Mode == Sequential {
		harts = 1
	}
	log := cfg.Logger.With("workload", cfg.Workload, "mode", cfg.Mode)
	log.Info("boot", "harts", harts, "side", cfg.Side, "rounds", cfg.Rounds)

	rep, err := hart.Boot(ctx, harts, r.entry,
		hart.WithLogger(cfg.Logger),
		hart.WithConsole(r.con),
		hart.WithPinning(cfg.Pin),
	)
	res := &Result{Config: cfg, Report: rep}
	if err != nil {
		return res, err
	}
	res.Matrix = r.coord.Snapshot()
	res.Elapsed = r.elapsed
	log.Info("done", "elapsed", r.elapsed)

	return res, nil
}

func newRunner(cfg Config) (*runner, error) {
	a, err := matrix.FromSlice(cfg.Side, Sequence(cfg.Side))
	if err != nil {
		return nil, err
	}
	out, err := matrix.NewZeros(cfg.Side)
	if err != nil {
		return nil, err
	}
	coord, err := shared.New(out, cfg.Sections(), cfg.Sections())
	if err != nil {
		return nil, err
	}

	r := &runner{cfg: cfg, con: cfg.Console, coord: coord}
	if r.con == nil {
		r.con = console.Acquire()
	}

	switch cfg.Workload {
	case Convolution:
		k, err := matrix.NewKernel(cfg.KernelSide, Sequence(cfg.KernelSide))
		if err != nil {
			return nil, err
		}
		r.kernel = func(s *matrix.Section) {
			if err := s.Convolute(a, k); err != nil {
				hart.Halt("%v", err)
			}
		}
	default:
		r.kernel = func(s *matrix.Section) {
			if err := s.Multiply(a, a); err != nil {
				hart.Halt("%v", err)
			}
		}
	}

	return r, nil
}

// entry is the code image every hart runs.
func (r *runner) entry(id int) {
	if id == 0 && r.cfg.Mode == Parallel {
		r.con.Println(r.cfg.Workload.Banner())
	}

	r.coord.Initialize()
	for round := 0; round < r.cfg.Rounds; round++ {
		if round > 0 {
			r.coord.WaitRound(round)
		}
		start := r.cfg.Counter.Ticks() // after initialization; hart 0's timer is the one reported
		r.coord.Compute(r.kernel, id)
		if id != 0 {
			continue
		}

		d := clint.Elapsed(r.cfg.Counter, start)
		r.elapsed = append(r.elapsed, d)
		r.con.Printf("Time: %v%s", d, console.Newline)
		r.con.Printf("Result:%s%s", console.Newline, format(r.coord.String()))

		if round+1 < r.cfg.Rounds {
			if err := r.coord.Reset(); err != nil {
				hart.Halt("round %d: %v", round, err)
			}
		}
	}
}

// format converts the matrix rows to console line endings.
func format(s string) string {
	return strings.ReplaceAll(s, "\n", console.Newline)
}

// Describe renders cfg as a single log-friendly line.
func Describe(cfg Config) string {
	return fmt.Sprintf("%s/%s harts=%d side=%d kernel=%d rounds=%d",
		cfg.Workload, cfg.Mode, cfg.Harts, cfg.Side, cfg.KernelSide, cfg.Rounds)
}
