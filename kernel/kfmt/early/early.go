// Package early provides console output for the window between CPU reset and
// the switch to the final page tables.
//
// Output goes straight to the UART through the fixmap console slot, which
// the boot page tables map to the UART's physical page. Callers must stop
// using this package once the final page tables replace the bootstrap ones;
// nothing here detects that switch.
//
// The package comes in two builds selected by the earlyprintk build tag.
// With the tag, Printf and Panicf write to the UART. Without it, Printf does
// nothing and Panicf only halts; the UART packages are not linked in at all.
// Call sites are the same for both builds.
package early

import "github.com/freedeaths/RT-Xen/kernel/cpu"

// haltFn is mocked by tests. Panicf relies on it never returning.
var haltFn = cpu.Halt

// Resolve returns the virtual address through which a device at physical
// address phys is reached, when the page containing phys is mapped at the
// page-aligned virtual address slotBase. offsetMask is the page size minus
// one; the offset of phys inside its page is carried over unchanged so the
// result points at the device registers and not just at their page.
func Resolve(slotBase, phys, offsetMask uintptr) uintptr {
	return slotBase + phys&offsetMask
}
