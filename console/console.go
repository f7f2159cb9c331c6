// SPDX-License-Identifier: MIT

// Package console serializes all output to the single shared device.
//
// Purpose:
//   - One process-wide Console owns the device and constructs it lazily,
//     exactly once, no matter how many harts race on the first call.
//   - Every write runs under the same spinlock, so output interleaves only
//     at whole-write granularity.
//
// Behavior highlights:
//   - No fairness: a hart may spin on the lock indefinitely under contention.
//   - Write returns the device error; the Print helpers discard it.
//   - The device is never torn down.
package console

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/katalvlaran/hartmatrix/device"
	"github.com/katalvlaran/hartmatrix/device/uart"
	"github.com/katalvlaran/hartmatrix/spin"
)

// Newline terminates every Println, as a serial terminal expects.
const Newline = "\r\n"

// ErrAlreadyConstructed is returned by SetFactory once the device exists.
var ErrAlreadyConstructed = errors.New("console: device already constructed")

// Factory constructs the console device. It runs at most once per Console.
type Factory func() device.Device

// DefaultFactory is a UART on a hosted register window that forwards the
// transmitted bytes to standard output.
func DefaultFactory() device.Device {
	u, _ := uart.NewHosted(os.Stdout)
	return u
}

// Console guards one output device.
// The zero value is not usable; use Acquire or New.
type Console struct {
	lock    spin.Lock   // guards construction and every write
	ready   atomic.Bool // device constructed and initialized
	factory Factory
	dev     device.Device
	initErr error
}

var global = Console{factory: DefaultFactory}

// New returns a private console over the device built by f.
func New(f Factory) *Console {
	return &Console{factory: f}
}

// Acquire returns the process-wide console, constructing its device on the
// first call.
func Acquire() *Console {
	global.ensure()
	return &global
}

// SetFactory replaces the device constructor of the process-wide console.
// It must run before the first Acquire.
func SetFactory(f Factory) error {
	global.lock.Lock()
	defer global.lock.Unlock()
	if global.ready.Load() {
		return ErrAlreadyConstructed
	}
	global.factory = f

	return nil
}

// ensure constructs the device once.
// Implementation:
//   - Stage 1: unlocked fast path on the ready flag.
//   - Stage 2: take the lock and re-check, since another hart may have
//     constructed the device between the check and the acquisition.
//   - Stage 3: construct, initialize, publish ready, release.
func (c *Console) ensure() {
	if c.ready.Load() {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.ready.Load() {
		return
	}
	c.dev = c.factory()
	if c.dev == nil {
		c.initErr = device.ErrNotInitialized
	} else {
		c.initErr = c.dev.Init()
	}
	c.ready.Store(true)
}

// Write sends p to the device as one indivisible unit.
func (c *Console) Write(p []byte) (int, error) {
	c.ensure()
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.initErr != nil {
		return 0, fmt.Errorf("console: %w", c.initErr)
	}

	return c.dev.Write(p)
}

// WriteString is Write for strings.
func (c *Console) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Device returns the constructed device, building it if needed.
func (c *Console) Device() device.Device {
	c.ensure()
	return c.dev
}

// Print formats with fmt.Sprint and writes the result; errors are dropped.
func (c *Console) Print(a ...any) { _, _ = c.WriteString(fmt.Sprint(a...)) }

// Printf formats with fmt.Sprintf and writes the result; errors are dropped.
func (c *Console) Printf(format string, a ...any) {
	_, _ = c.WriteString(fmt.Sprintf(format, a...))
}

// Println writes the operands followed by Newline in a single write.
func (c *Console) Println(a ...any) {
	s := fmt.Sprintln(a...)
	_, _ = c.WriteString(s[:len(s)-1] + Newline)
}

// Print writes to the process-wide console.
func Print(a ...any) { Acquire().Print(a...) }

// Printf writes to the process-wide console.
func Printf(format string, a ...any) { Acquire().Printf(format, a...) }

// Println writes to the process-wide console.
func Println(a ...any) { Acquire().Println(a...) }
