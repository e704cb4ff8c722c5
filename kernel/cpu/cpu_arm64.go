package cpu

// waitForInterrupt executes a WFI instruction. Interrupts are masked during
// early boot so the core only leaves WFI on a spurious wake-up, after which
// Halt simply executes it again.
func waitForInterrupt()
