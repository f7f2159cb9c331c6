// Command hartmatrix boots the harts and runs one partitioned matrix
// workload, printing through the shared console.
//
// Usage:
//
//	hartmatrix [-workload mult|conv] [-mode parallel|sequential] [-harts 4]
//	           [-side 4] [-kernel 3] [-rounds 1] [-timeout 30s] [-fb out.png] [-v]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/katalvlaran/hartmatrix/benchmark"
	"github.com/katalvlaran/hartmatrix/console"
	"github.com/katalvlaran/hartmatrix/device"
	"github.com/katalvlaran/hartmatrix/device/framebuffer"
	"github.com/katalvlaran/hartmatrix/hart"
)

var (
	workload = flag.String("workload", "mult", "Workload: mult, conv")
	mode     = flag.String("mode", "parallel", "Mode: parallel, sequential")
	harts    = flag.Int("harts", benchmark.DefaultHarts, "Number of harts (one section each)")
	side     = flag.Int("side", benchmark.DefaultSide, "Matrix side")
	kernel   = flag.Int("kernel", benchmark.DefaultKernelSide, "Convolution kernel side (odd)")
	rounds   = flag.Int("rounds", benchmark.DefaultRounds, "Compute rounds, reset in between")
	timeout  = flag.Duration("timeout", 30*time.Second, "Watchdog: give up on spinning harts after this long")
	fbPath   = flag.String("fb", "", "Also render the console to a framebuffer and save it as PNG")
	nopin    = flag.Bool("nopin", false, "Do not pin harts to CPUs")
	verbose  = flag.Bool("v", false, "Verbose (debug) logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	w, err := benchmark.ParseWorkload(*workload)
	if err != nil {
		return err
	}
	m, err := benchmark.ParseMode(*mode)
	if err != nil {
		return err
	}
	if *harts < 1 || *side < 1 || *kernel < 1 || *rounds < 1 {
		return errors.New("harts, side, kernel and rounds must be positive")
	}

	var fb *framebuffer.Framebuffer
	if *fbPath != "" {
		fb = framebuffer.New(640, 480)
		if err = console.SetFactory(func() device.Device {
			return device.Multi(console.DefaultFactory(), fb)
		}); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := benchmark.Run(ctx,
		benchmark.WithWorkload(w),
		benchmark.WithMode(m),
		benchmark.WithHarts(*harts),
		benchmark.WithSide(*side),
		benchmark.WithKernelSide(*kernel),
		benchmark.WithRounds(*rounds),
		benchmark.WithPinning(!*nopin),
		benchmark.WithLogger(logger),
	)
	if res != nil {
		logger.Debug("report", "config", benchmark.Describe(res.Config),
			"returned", res.Report.Returned, "faults", len(res.Report.Faults), "running", res.Report.Running)
	}
	if fb != nil {
		if serr := fb.SavePNG(*fbPath); serr != nil {
			return errors.Join(err, fmt.Errorf("framebuffer: %w", serr))
		}
		logger.Info("framebuffer saved", "path", *fbPath)
	}
	if errors.Is(err, hart.ErrStalled) {
		logger.Warn("spinning harts are abandoned at exit", "harts", res.Report.Running)
	}

	return err
}
