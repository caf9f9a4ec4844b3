//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// Pin locks the calling goroutine to an OS thread and binds that thread
// to one CPU core via SetThreadAffinityMask. The returned function
// releases the thread lock.
func Pin(slot int) func() {
	runtime.LockOSThread()

	core := slot % runtime.NumCPU()
	handle, _, _ := getCurrentThread.Call()
	// Bit N of the mask selects CPU N. Failure is non-fatal.
	_, _, _ = setThreadAffinityMask.Call(handle, uintptr(1)<<core)

	return runtime.UnlockOSThread
}
