//go:build !rpi3 && !vexpress

package platform

const (
	// Name identifies the board this kernel was built for.
	Name = "qemu-virt"

	// UARTPhysBase is the physical address of the PL011 register block.
	UARTPhysBase = uintptr(0x09000000)
)
