// SPDX-License-Identifier: MIT
// Package: benchmark
//
// options.go: the Config of one run and its functional options.
//
// Behavior highlights:
//   - Option constructors panic on nonsensical values (programmer error).
//   - Shape errors that depend on several options together (sections not
//     tiling the matrix, even kernel) are reported by NewConfig as errors.

package benchmark

import (
	"log/slog"

	"github.com/katalvlaran/hartmatrix/clint"
	"github.com/katalvlaran/hartmatrix/console"
	"github.com/katalvlaran/hartmatrix/matrix"
)

// Defaults describe the four-core image: a 4×4 product, one row per hart.
const (
	DefaultWorkload   = Multiplication
	DefaultMode       = Parallel
	DefaultHarts      = 4
	DefaultSide       = 4
	DefaultKernelSide = 3
	DefaultRounds     = 1
)

// Panic messages (stable for tests).
const (
	panicBadHarts      = "benchmark: WithHarts: harts must be >= 1"
	panicBadSide       = "benchmark: WithSide: side must be >= 1"
	panicBadKernelSide = "benchmark: WithKernelSide: side must be >= 1"
	panicBadRounds     = "benchmark: WithRounds: rounds must be >= 1"
	panicNilCounter    = "benchmark: WithCounter: counter must not be nil"
	panicNilConsole    = "benchmark: WithConsole: console must not be nil"
	panicNilLogger     = "benchmark: WithLogger: logger must not be nil"
)

// Config is the full description of one run. Build it with NewConfig.
type Config struct {
	Workload   Workload
	Mode       Mode
	Harts      int // harts booted in parallel mode; sequential mode boots one
	Side       int
	KernelSide int
	Rounds     int // rounds separated by a coordinator Reset
	Pin        bool

	Counter clint.Counter
	Console *console.Console // nil selects the process-wide console
	Logger  *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Config {
	cfg := Config{
		Workload:   DefaultWorkload,
		Mode:       DefaultMode,
		Harts:      DefaultHarts,
		Side:       DefaultSide,
		KernelSide: DefaultKernelSide,
		Rounds:     DefaultRounds,
		Pin:        true,
		Logger:     slog.Default(),
	}
	for _, fn := range opts {
		fn(&cfg)
	}
	if cfg.Counter == nil {
		cfg.Counter, _ = clint.NewHosted(clint.Host{})
	}

	return cfg
}

// NewConfig applies opts and checks that they describe a runnable layout.
// Errors:
//   - matrix.ErrBadLayout when Harts sections cannot tile Side² elements.
//   - matrix.ErrEvenKernel for a convolution with an even kernel side.
func NewConfig(opts ...Option) (Config, error) {
	cfg := gatherOptions(opts...)
	if err := cfg.Layout().Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Workload == Convolution && cfg.KernelSide%2 == 0 {
		return Config{}, matrix.ErrEvenKernel
	}

	return cfg, nil
}

// Sections returns the number of sections the accumulator is cut into.
func (c Config) Sections() int {
	if c.Mode == Sequential {
		return 1
	}

	return c.Harts
}

// Layout returns the partition of the accumulator.
func (c Config) Layout() matrix.Layout {
	return matrix.Layout{Side: c.Side, Sections: c.Sections()}
}

// WithWorkload selects the kernel.
func WithWorkload(w Workload) Option {
	return func(c *Config) { c.Workload = w }
}

// WithMode selects sequential or parallel execution.
func WithMode(m Mode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithHarts sets the number of harts (and sections) in parallel mode.
func WithHarts(n int) Option {
	if n < 1 {
		panic(panicBadHarts)
	}
	return func(c *Config) { c.Harts = n }
}

// WithSide sets the side of the input and result matrices.
func WithSide(side int) Option {
	if side < 1 {
		panic(panicBadSide)
	}
	return func(c *Config) { c.Side = side }
}

// WithKernelSide sets the side of the convolution kernel. It must be odd.
func WithKernelSide(side int) Option {
	if side < 1 {
		panic(panicBadKernelSide)
	}
	return func(c *Config) { c.KernelSide = side }
}

// WithRounds repeats the parallel computation; the coordinator is Reset
// between rounds.
func WithRounds(n int) Option {
	if n < 1 {
		panic(panicBadRounds)
	}
	return func(c *Config) { c.Rounds = n }
}

// WithCounter replaces the timer harts read to measure compute time.
func WithCounter(ctr clint.Counter) Option {
	if ctr == nil {
		panic(panicNilCounter)
	}
	return func(c *Config) { c.Counter = ctr }
}

// WithConsole prints on con instead of the process-wide console.
func WithConsole(con *console.Console) Option {
	if con == nil {
		panic(panicNilConsole)
	}
	return func(c *Config) { c.Console = con }
}

// WithLogger routes run and hart logs to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(c *Config) { c.Logger = l }
}

// WithPinning toggles CPU pinning of harts.
func WithPinning(on bool) Option {
	return func(c *Config) { c.Pin = on }
}
