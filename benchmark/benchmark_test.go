package benchmark_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hartmatrix/benchmark"
	"github.com/katalvlaran/hartmatrix/console"
	"github.com/katalvlaran/hartmatrix/device"
	"github.com/katalvlaran/hartmatrix/matrix"
)

var product4 = []matrix.Number{
	56, 62, 68, 74,
	152, 174, 196, 218,
	248, 286, 324, 362,
	344, 398, 452, 506,
}

var conv4 = []matrix.Number{
	73, 121, 154, 103,
	171, 258, 294, 186,
	279, 402, 438, 270,
	139, 187, 202, 113,
}

// frozen is a timer that never advances, so every run prints "Time: 0s".
type frozen struct{}

func (frozen) Ticks() uint64 { return 42 }

// run executes one benchmark with a captured console and returns the result
// and everything printed.
func run(t *testing.T, opts ...benchmark.Option) (*benchmark.Result, string) {
	t.Helper()
	var out bytes.Buffer
	con := console.New(func() device.Device { return device.Writer{W: &out} })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := []benchmark.Option{
		benchmark.WithConsole(con),
		benchmark.WithCounter(frozen{}),
		benchmark.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		benchmark.WithPinning(false),
	}
	res, err := benchmark.Run(ctx, append(base, opts...)...)
	require.NoError(t, err)

	return res, out.String()
}

func TestRun_ParallelMultiplication(t *testing.T) {
	res, out := run(t)

	require.Equal(t, product4, res.Matrix.Values())
	require.Equal(t, []int{0, 1, 2, 3}, res.Report.Returned)
	require.Equal(t, []time.Duration{0}, res.Elapsed)

	want := strings.Join([]string{
		"Matrix multiplication",
		"Time: 0s",
		"Result:",
		"[56, 62, 68, 74]",
		"[152, 174, 196, 218]",
		"[248, 286, 324, 362]",
		"[344, 398, 452, 506]",
		"",
	}, "\r\n")
	require.Equal(t, want, out)
}

func TestRun_ParallelConvolution(t *testing.T) {
	res, out := run(t, benchmark.WithWorkload(benchmark.Convolution))

	require.Equal(t, conv4, res.Matrix.Values())
	require.True(t, strings.HasPrefix(out, "Convolution\r\n"), out)
	require.Contains(t, out, "[73, 121, 154, 103]\r\n")
}

// TestRun_SequentialMatchesParallel checks that partitioning never changes a
// single bit of the result, for both workloads.
func TestRun_SequentialMatchesParallel(t *testing.T) {
	for _, w := range []benchmark.Workload{benchmark.Multiplication, benchmark.Convolution} {
		t.Run(w.String(), func(t *testing.T) {
			seq, seqOut := run(t, benchmark.WithWorkload(w), benchmark.WithMode(benchmark.Sequential))
			par, _ := run(t, benchmark.WithWorkload(w), benchmark.WithHarts(8))

			require.True(t, seq.Matrix.Equal(par.Matrix), "seq:\n%s\npar:\n%s", seq.Matrix, par.Matrix)
			require.Equal(t, []int{0}, seq.Report.Returned, "sequential boots hart 0 only")
			require.True(t, strings.HasPrefix(seqOut, "Time: "), "no banner in sequential mode")
		})
	}
}

func TestRun_LargerSide(t *testing.T) {
	res, _ := run(t, benchmark.WithSide(8), benchmark.WithHarts(16))

	a, err := matrix.FromSlice(8, benchmark.Sequence(8))
	require.NoError(t, err)
	want, err := matrix.NewZeros(8)
	require.NoError(t, err)
	secs, err := want.Split(1)
	require.NoError(t, err)
	require.NoError(t, secs[0].Multiply(a, a))

	require.True(t, want.Equal(res.Matrix))
}

// TestRun_RoundsResetTheAccumulator repeats the computation; each round
// starts from zero, so the final matrix equals a single round.
func TestRun_RoundsResetTheAccumulator(t *testing.T) {
	res, out := run(t, benchmark.WithRounds(3))

	require.Equal(t, product4, res.Matrix.Values())
	require.Len(t, res.Elapsed, 3)
	require.Equal(t, 3, strings.Count(out, "Result:"))
	require.Equal(t, 1, strings.Count(out, "Matrix multiplication"))
}

func TestNewConfig_Errors(t *testing.T) {
	_, err := benchmark.NewConfig(benchmark.WithHarts(3))
	require.ErrorIs(t, err, matrix.ErrBadLayout)

	_, err = benchmark.NewConfig(benchmark.WithWorkload(benchmark.Convolution), benchmark.WithKernelSide(2))
	require.ErrorIs(t, err, matrix.ErrEvenKernel)

	// an even kernel is irrelevant to multiplication
	_, err = benchmark.NewConfig(benchmark.WithKernelSide(2))
	require.NoError(t, err)

	// sequential mode ignores the hart count for the layout
	cfg, err := benchmark.NewConfig(benchmark.WithHarts(3), benchmark.WithMode(benchmark.Sequential))
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Sections())
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := benchmark.NewConfig()
	require.NoError(t, err)
	assert.Equal(t, benchmark.DefaultWorkload, cfg.Workload)
	assert.Equal(t, benchmark.DefaultMode, cfg.Mode)
	assert.Equal(t, benchmark.DefaultHarts, cfg.Harts)
	assert.Equal(t, benchmark.DefaultSide, cfg.Side)
	assert.Equal(t, benchmark.DefaultKernelSide, cfg.KernelSide)
	assert.Equal(t, benchmark.DefaultRounds, cfg.Rounds)
	assert.NotNil(t, cfg.Counter)
	assert.Equal(t, "multiplication/parallel harts=4 side=4 kernel=3 rounds=1", benchmark.Describe(cfg))
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.PanicsWithValue(t, "benchmark: WithHarts: harts must be >= 1", func() { benchmark.WithHarts(0) })
	assert.PanicsWithValue(t, "benchmark: WithSide: side must be >= 1", func() { benchmark.WithSide(-1) })
	assert.PanicsWithValue(t, "benchmark: WithKernelSide: side must be >= 1", func() { benchmark.WithKernelSide(0) })
	assert.PanicsWithValue(t, "benchmark: WithRounds: rounds must be >= 1", func() { benchmark.WithRounds(0) })
	assert.Panics(t, func() { benchmark.WithCounter(nil) })
	assert.Panics(t, func() { benchmark.WithConsole(nil) })
	assert.Panics(t, func() { benchmark.WithLogger(nil) })
}

func TestParse(t *testing.T) {
	w, err := benchmark.ParseWorkload("conv")
	require.NoError(t, err)
	require.Equal(t, benchmark.Convolution, w)
	w, err = benchmark.ParseWorkload("Multiplication")
	require.NoError(t, err)
	require.Equal(t, benchmark.Multiplication, w)
	_, err = benchmark.ParseWorkload("fft")
	require.ErrorIs(t, err, benchmark.ErrUnknownWorkload)

	m, err := benchmark.ParseMode("seq")
	require.NoError(t, err)
	require.Equal(t, benchmark.Sequential, m)
	_, err = benchmark.ParseMode("turbo")
	require.ErrorIs(t, err, benchmark.ErrUnknownMode)

	require.Equal(t, "Mode(7)", benchmark.Mode(7).String())
}
