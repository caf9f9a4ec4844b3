//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to an OS thread and binds that thread
// to one CPU core, chosen by slot modulo the core count. The returned
// function releases the thread lock.
func Pin(slot int) func() {
	runtime.LockOSThread()

	core := slot % runtime.NumCPU()
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)
	// 0 targets the current thread. Failure is non-fatal: the worker
	// just runs unpinned.
	_ = unix.SchedSetaffinity(0, &mask)

	return runtime.UnlockOSThread
}
