// Package hartmatrix runs a partitioned matrix workload on several harts
// that share one result buffer and coordinate with nothing but atomics.
//
// What is inside?
//
//	A small bare-metal style runtime, hosted on goroutines:
//		• Two-flag initialization: exactly one hart splits the matrix
//		• Per-section ownership: claim with a CAS, release, never re-arm
//		• Completion barrier: nobody reads the aggregate before every release
//		• One console device, built once, written under a spinlock
//		• Fault path: a panicking hart prints, parks and stops only itself
//
// Packages:
//
//	spin/          spinlock and spin-wait helpers
//	matrix/        Matrix, Section, Split, Multiply and Convolute kernels
//	shared/        the Coordinator: Initialize, Compute, Wait/Read, Reset
//	console/       process-wide console singleton over a device.Device
//	device/        Device interface; mmio register bus, NS16550A uart, gg framebuffer
//	clint/         machine timer (mtime, 100 ns ticks) and the host counter
//	hart/          Boot N harts into one entry, fault → diagnostic + park
//	benchmark/     workloads × modes, functional-option Config, Run
//	cmd/           hartmatrix CLI
//
// Quick example (four harts, one section each):
//
//	hart 0 ─┐                      ┌─ section 0 ─┐
//	hart 1 ─┤ Initialize → Compute ├─ section 1 ─┤ completed == 4 → Result
//	hart 2 ─┤   (one split)        ├─ section 2 ─┤
//	hart 3 ─┘                      └─ section 3 ─┘
//
//	res, err := benchmark.Run(ctx, benchmark.WithHarts(4), benchmark.WithSide(4))
//
// Installation:
//
//	go install github.com/katalvlaran/hartmatrix/cmd/hartmatrix@latest
package hartmatrix
