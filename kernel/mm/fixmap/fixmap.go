// Package fixmap describes the bootstrap mapping slots: a window of
// page-sized virtual addresses that the boot page tables reserve for devices
// which must be reachable before the final page tables exist.
//
// The addresses are only meaningful while the bootstrap tables are live.
// Nothing in this package installs or tears down a mapping; that is the job
// of the boot assembly and, later, the memory manager.
package fixmap

import "github.com/freedeaths/RT-Xen/kernel/mm"

// Slot is the index of a page inside the fixmap window.
type Slot uintptr

const (
	// Base is the page-aligned virtual address of slot 0.
	Base = uintptr(0x00400000)

	// Size is the size of the fixmap window: one 2M block.
	Size = uintptr(2 << 20)

	// MaxSlots is the number of page slots that fit in the window.
	MaxSlots = Slot(Size >> mm.PageShift)
)

// Console maps the page holding the early UART registers.
const Console Slot = 0

// ConsoleAddr is the virtual address of the Console slot. It is the constant
// form of Addr(Console) so that it can take part in other constant
// expressions.
const ConsoleAddr = Base + uintptr(Console)<<mm.PageShift

// Addr returns the virtual address of the page reserved for slot.
func Addr(slot Slot) uintptr {
	return Base + mm.Page(slot).Address()
}

// SlotFromAddress returns the slot that contains virtAddr and true, or false
// if virtAddr lies outside the fixmap window.
func SlotFromAddress(virtAddr uintptr) (Slot, bool) {
	if virtAddr < Base || virtAddr >= Base+Size {
		return 0, false
	}

	return Slot(mm.PageFromAddress(virtAddr - Base)), true
}
