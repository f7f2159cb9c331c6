// Package device defines the byte-stream output devices the console can own.
//
// A Device is constructed once, initialized once and then written to under
// the console lock; implementations need not be safe for concurrent use.
package device

import (
	"errors"
	"io"
)

// Device is a byte-oriented output device.
type Device interface {
	io.Writer

	// Init configures the device. It is called exactly once, before the
	// first Write.
	Init() error
}

// Writer adapts any io.Writer into a Device with a no-op Init.
type Writer struct {
	W io.Writer
}

// Init implements Device.
func (Writer) Init() error { return nil }

// Write forwards to the wrapped writer.
func (w Writer) Write(p []byte) (int, error) { return w.W.Write(p) }

// Multi duplicates every write to all devices, like io.MultiWriter.
// Init and Write stop at the first failing device.
func Multi(devs ...Device) Device {
	all := make([]Device, len(devs))
	copy(all, devs)

	return multi(all)
}

type multi []Device

func (m multi) Init() error {
	for _, d := range m {
		if err := d.Init(); err != nil {
			return err
		}
	}

	return nil
}

func (m multi) Write(p []byte) (int, error) {
	for _, d := range m {
		n, err := d.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}

	return len(p), nil
}

// ErrNotInitialized is returned by devices written before Init.
var ErrNotInitialized = errors.New("device: not initialized")
