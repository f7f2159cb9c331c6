//go:build linux

package hart

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pin binds the calling (locked) thread to CPU id mod NumCPU.
func pin(id int) (int, error) {
	cpu := id % runtime.NumCPU()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return -1, err
	}

	return cpu, nil
}
