//go:build !arm64

package cpu

// waitForInterrupt blocks the calling goroutine for good. It stands in for
// WFI when the kernel packages are built for a host (for example, to run the
// unit tests) so that a halted caller does not burn a host CPU.
func waitForInterrupt() {
	select {}
}
