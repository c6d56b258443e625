//go:build linux

package mapbench

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCPU binds the calling OS thread to cpu worker mod NumCPU.
// The caller must have locked its goroutine to the thread.
func pinToCPU(worker int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(worker % runtime.NumCPU())
	return unix.SchedSetaffinity(0, &set)
}
