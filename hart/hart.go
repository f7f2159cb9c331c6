// SPDX-License-Identifier: MIT

// Package hart boots several harts into the same entry point.
//
// Every hart is a goroutine locked to its own OS thread and, where the host
// allows it, pinned to one CPU. A hart runs entry(id) once. If entry panics
// the hart prints a diagnostic on the console and parks forever: only that
// hart stops. Harts that depend on it keep spinning, exactly as they would
// on the target.
package hart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"time"

	"github.com/katalvlaran/hartmatrix/console"
)

var (
	// ErrBadHarts is returned by Boot for a hart count below 1.
	ErrBadHarts = errors.New("hart: need at least one hart")

	// ErrFault is returned by Boot when at least one hart parked on a panic.
	ErrFault = errors.New("hart: hart faulted")

	// ErrStalled is returned by Boot when the context ended before every
	// hart finished.
	ErrStalled = errors.New("hart: harts still running")
)

// Entry is the code image every hart executes. id is zero-based; hart 0 is
// the one allowed to time the run and print the summary.
type Entry func(id int)

// Fault describes a hart that parked.
type Fault struct {
	ID    int
	Value any // the recovered panic value
}

// Error implements error.
func (f Fault) Error() string { return fmt.Sprintf("hart %d: %v", f.ID, f.Value) }

// Report is the outcome of one Boot.
type Report struct {
	Returned []int   // harts whose entry returned
	Faults   []Fault // harts that parked
	Running  []int   // harts still spinning when the context ended
}

// Abort is the panic value raised by Halt.
type Abort struct{ Msg string }

func (a Abort) String() string { return a.Msg }

// Halt aborts the calling hart with a diagnostic. It never returns.
func Halt(format string, a ...any) {
	panic(Abort{Msg: fmt.Sprintf(format, a...)})
}

type outcome struct {
	id    int
	fault *Fault
}

// never is never closed; receiving from it is the hosted "wfi" loop.
var never chan struct{}

func park() { <-never }

// Boot starts n harts running entry and waits for all of them to return or
// park, or for ctx to end.
// Implementation:
//   - Stage 1: gather options, validate n.
//   - Stage 2: start one locked goroutine per hart.
//   - Stage 3: collect outcomes until all are in or ctx is done.
//
// Behavior highlights:
//   - Boot never stops a hart. On ctx expiry the spinning harts are reported
//     in Report.Running and left behind.
//
// Errors:
//   - ErrBadHarts, ErrFault (wrapping every Fault), ErrStalled (wrapping ctx.Err()).
func Boot(ctx context.Context, n int, entry Entry, opts ...Option) (Report, error) {
	o := gatherOptions(opts...)
	if n < 1 {
		return Report{}, ErrBadHarts
	}

	results := make(chan outcome, n)
	start := time.Now()
	for id := 0; id < n; id++ {
		go run(id, n, entry, o, results)
	}

	var (
		rep  Report
		seen = make(map[int]bool, n)
	)
	record := func(r outcome) {
		seen[r.id] = true
		if r.fault != nil {
			rep.Faults = append(rep.Faults, *r.fault)
		} else {
			rep.Returned = append(rep.Returned, r.id)
		}
	}
	for len(seen) < n {
		select {
		case r := <-results:
			record(r)
		case <-ctx.Done():
			for drained := false; !drained; {
				select {
				case r := <-results:
					record(r)
				default:
					drained = true
				}
			}
			if len(seen) == n {
				continue
			}
			for id := 0; id < n; id++ {
				if !seen[id] {
					rep.Running = append(rep.Running, id)
				}
			}
			rep.sort()
			o.logger.Error("harts stalled", "running", rep.Running, "elapsed", time.Since(start))
			return rep, fmt.Errorf("%w: %v: %w", ErrStalled, rep.Running, ctx.Err())
		}
	}
	rep.sort()
	o.logger.Debug("all harts done", "harts", n, "faults", len(rep.Faults), "elapsed", time.Since(start))

	if len(rep.Faults) > 0 {
		errs := make([]error, 0, len(rep.Faults)+1)
		errs = append(errs, ErrFault)
		for _, f := range rep.Faults {
			errs = append(errs, f)
		}
		return rep, errors.Join(errs...)
	}

	return rep, nil
}

func (r *Report) sort() {
	sort.Ints(r.Returned)
	sort.Ints(r.Running)
	sort.Slice(r.Faults, func(i, j int) bool { return r.Faults[i].ID < r.Faults[j].ID })
}

// run is the per-hart trampoline: lock, pin, enter, and park on a fault.
func run(id, n int, entry Entry, o options, results chan<- outcome) {
	runtime.LockOSThread()
	log := o.logger.With("hart", id)
	if o.pin {
		if cpu, err := pin(id); err != nil {
			log.Debug("pinning unavailable", "err", err)
		} else {
			log.Debug("pinned", "cpu", cpu)
		}
	}

	defer func() {
		r := recover()
		if r == nil {
			log.Debug("hart returned")
			results <- outcome{id: id}
			return
		}
		f := Fault{ID: id, Value: r}
		diagnose(o.console, f)
		log.Error("hart parked", "panic", fmt.Sprint(r))
		results <- outcome{id: id, fault: &f}
		park()
	}()

	log.Debug("hart entering", "harts", n)
	entry(id)
}

// diagnose prints the fault on the console. A panic raised while printing
// (for instance a faulting device) is swallowed: the hart parks regardless.
func diagnose(c *console.Console, f Fault) {
	defer func() { _ = recover() }()
	if c == nil {
		c = console.Acquire()
	}
	c.Printf("hart %d: panic: %v%s", f.ID, f.Value, console.Newline)
}

// ---------- options ----------

// Option configures Boot.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	console *console.Console
	pin     bool
}

// DefaultPin enables CPU pinning of harts.
const DefaultPin = true

const panicNilLogger = "hart: WithLogger: logger must not be nil"

func gatherOptions(opts ...Option) options {
	o := options{logger: slog.Default(), pin: DefaultPin}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// WithLogger routes hart lifecycle logs to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *options) { o.logger = l }
}

// WithConsole prints fault diagnostics on c instead of the process console.
func WithConsole(c *console.Console) Option {
	return func(o *options) { o.console = c }
}

// WithPinning toggles CPU pinning.
func WithPinning(on bool) Option {
	return func(o *options) { o.pin = on }
}
