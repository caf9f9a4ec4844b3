//go:build !linux && !windows

package cpu

import "runtime"

// Pin locks the calling goroutine to an OS thread. Core pinning is not
// available on this platform. The returned function releases the lock.
func Pin(slot int) func() {
	_ = slot
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
