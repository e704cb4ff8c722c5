package main

import "github.com/freedeaths/RT-Xen/kernel/kmain"

// fdtAddr is filled in by the boot assembly with the device tree address
// handed over by the boot loader.
var fdtAddr uintptr

// main makes a dummy call to the actual kernel entrypoint. It keeps the
// compiler from discarding kmain.Kmain, which is only ever reached from the
// boot assembly.
//
// A global variable is passed as an argument to Kmain to prevent the compiler
// from inlining the call and removing Kmain from the generated object file.
func main() {
	kmain.Kmain(fdtAddr)
}
