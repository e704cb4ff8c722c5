//go:build rpi3

package platform

const (
	// Name identifies the board this kernel was built for.
	Name = "rpi3"

	// UARTPhysBase is the physical address of the BCM2837 PL011 (UART0).
	UARTPhysBase = uintptr(0x3F201000)
)
