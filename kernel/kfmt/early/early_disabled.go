//go:build !earlyprintk

package early

// Enabled reports whether this build writes to the early UART.
const Enabled = false

// Printf does nothing in builds without the earlyprintk tag.
func Printf(format string, args ...interface{}) {}

// Panicf halts the CPU without printing anything. It never returns.
func Panicf(format string, args ...interface{}) {
	haltFn()
}
