// Package pl011 implements the transmit side of an ARM PL011 UART, which is
// all the early console needs. Line setup (baud rate, framing) is left to the
// firmware that handed control to the hypervisor.
package pl011

import "unsafe"

// Register offsets from the device base address.
const (
	regDR = 0x00 // data
	regFR = 0x18 // flags
)

// Flag register bits.
const (
	flagBusy = 1 << 3 // transmitting data
	flagTXFF = 1 << 5 // transmit FIFO full
)

var (
	mmioRead32  = readReg
	mmioWrite32 = writeReg
)

// SetRegisterAccess routes the register reads and writes of every Device
// through read and write until the returned restore function is called. A nil
// argument keeps direct memory access for that direction. It exists so that
// code driving a Device can be run on a host without the UART mapped.
func SetRegisterAccess(read func(addr uintptr) uint32, write func(addr uintptr, val uint32)) (restore func()) {
	prevRead, prevWrite := mmioRead32, mmioWrite32

	mmioRead32, mmioWrite32 = readReg, writeReg
	if read != nil {
		mmioRead32 = read
	}
	if write != nil {
		mmioWrite32 = write
	}

	return func() {
		mmioRead32, mmioWrite32 = prevRead, prevWrite
	}
}

// Device is a PL011 whose registers are reachable at virtual address Base.
type Device struct {
	Base uintptr
}

// Putc waits until the transmit FIFO has room and then queues c. The wait is
// as long as the hardware makes it; there is no timeout.
//
//go:nosplit
func (d *Device) Putc(c byte) {
	for mmioRead32(d.Base+regFR)&flagTXFF != 0 {
	}
	mmioWrite32(d.Base+regDR, uint32(c))
}

// Write queues every byte of p, in order. It implements io.Writer and never
// fails.
func (d *Device) Write(p []byte) (int, error) {
	for i := 0; i < len(p); i++ {
		d.Putc(p[i])
	}

	return len(p), nil
}

// Flush waits until the UART has shifted out every queued byte.
//
//go:nosplit
func (d *Device) Flush() {
	for mmioRead32(d.Base+regFR)&flagBusy != 0 {
	}
}

//go:nosplit
func readReg(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

//go:nosplit
func writeReg(addr uintptr, val uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = val
}
