package kmain

import (
	"unsafe"

	"github.com/freedeaths/RT-Xen/kernel"
	"github.com/freedeaths/RT-Xen/kernel/kfmt/early"
	"github.com/freedeaths/RT-Xen/kernel/mm/fixmap"
)

// fdtMagic is the big-endian magic number at the start of a flattened
// device tree blob.
const fdtMagic = 0xd00dfeed

var (
	errNoDeviceTree  = &kernel.Error{Module: "kmain", Message: "no device tree passed by the boot loader"}
	errMisalignedFDT = &kernel.Error{Module: "kmain", Message: "device tree is not 8-byte aligned"}
	errBadFDTMagic   = &kernel.Error{Module: "kmain", Message: "bad device tree magic"}
	errNoHandoff     = &kernel.Error{Module: "kmain", Message: "no handoff registered"}
	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}

	// handoffFn continues the boot once the early checks have passed. It is
	// set by the memory and console setup code and mocked by tests.
	handoffFn func(fdtAddr uintptr) *kernel.Error
)

// SetHandoff registers the function that Kmain calls once the early boot
// checks succeed.
func SetHandoff(fn func(fdtAddr uintptr) *kernel.Error) {
	handoffFn = fn
}

// Kmain is invoked by the boot assembly once the bootstrap page tables, with
// the console fixmap slot, are live. fdtAddr is the address of the flattened
// device tree handed over by the boot loader.
//
// Kmain is not expected to return. If it does, the boot assembly will halt
// the CPU.
//
//go:noinline
func Kmain(fdtAddr uintptr) {
	err := boot(fdtAddr)
	early.Panicf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
}

// boot prints the banner, checks the device tree and passes control to the
// registered handoff. It only comes back with the error that ended the boot;
// a handoff that returns cleanly yields errKmainReturned.
//
// Nothing here may allocate: it runs before the Go allocator exists. Console
// calls must stay direct; a call through a function value boxes its
// arguments on the heap.
func boot(fdtAddr uintptr) *kernel.Error {
	early.Printf("- boot CPU booting -\n")
	early.Printf("- early console at %#lx (fixmap slot %d) -\n", consoleAddr(), uintptr(fixmap.Console))

	if err := checkDeviceTree(fdtAddr); err != nil {
		return err
	}
	early.Printf("- device tree at %#lx -\n", fdtAddr)

	if handoffFn == nil {
		return errNoHandoff
	}

	if err := handoffFn(fdtAddr); err != nil {
		return err
	}

	return errKmainReturned
}

// checkDeviceTree runs the sanity checks that can be done on the device tree
// blob before anything is mapped besides the bootstrap tables.
func checkDeviceTree(fdtAddr uintptr) *kernel.Error {
	switch {
	case fdtAddr == 0:
		return errNoDeviceTree
	case fdtAddr&7 != 0:
		return errMisalignedFDT
	}

	hdr := (*[4]byte)(unsafe.Pointer(fdtAddr))
	magic := uint32(hdr[0])<<24 | uint32(hdr[1])<<16 | uint32(hdr[2])<<8 | uint32(hdr[3])
	if magic != fdtMagic {
		return errBadFDTMagic
	}

	return nil
}
