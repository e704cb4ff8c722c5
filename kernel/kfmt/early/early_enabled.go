//go:build earlyprintk

package early

import (
	"io"

	"github.com/freedeaths/RT-Xen/kernel/driver/uart/pl011"
	"github.com/freedeaths/RT-Xen/kernel/kfmt"
	"github.com/freedeaths/RT-Xen/kernel/mm"
	"github.com/freedeaths/RT-Xen/kernel/mm/fixmap"
	"github.com/freedeaths/RT-Xen/kernel/platform"
)

// Enabled reports whether this build writes to the early UART.
const Enabled = true

// UARTVirtAddr is the address of the early UART registers while the bootstrap
// mapping is live. It is the constant form of
// Resolve(fixmap.ConsoleAddr, platform.UARTPhysBase, mm.PageOffsetMask).
const UARTVirtAddr = fixmap.ConsoleAddr + platform.UARTPhysBase&mm.PageOffsetMask

// console is the subset of the UART driver used by this package.
type console interface {
	io.Writer
	Flush()
}

var (
	uart = pl011.Device{Base: UARTVirtAddr}

	// out is mocked by tests.
	out console = &uart
)

// Printf formats args according to format (see kfmt.Fprintf) and sends the
// result to the early UART one byte at a time. It returns once the last byte
// has been queued.
func Printf(format string, args ...interface{}) {
	kfmt.Fprintf(out, format, args...)
}

// Panicf prints like Printf, waits for the UART to drain and halts the CPU.
// It never returns.
func Panicf(format string, args ...interface{}) {
	kfmt.Fprintf(out, format, args...)
	out.Flush()
	haltFn()
}
