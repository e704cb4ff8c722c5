// Package cpu exposes the handful of processor primitives needed by the
// early boot path.
package cpu

// Halt parks the calling core forever. It never returns; the only way out is
// an external reset.
//
//go:nosplit
func Halt() {
	for {
		waitForInterrupt()
	}
}
