//go:build vexpress

package platform

const (
	// Name identifies the board this kernel was built for.
	Name = "vexpress"

	// UARTPhysBase is the physical address of the motherboard UART0.
	UARTPhysBase = uintptr(0x1C090000)
)
