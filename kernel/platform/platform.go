// Package platform holds the board constants the early boot path needs. The
// board is picked at build time with a tag (rpi3, vexpress); without a tag
// the QEMU virt machine is assumed.
package platform
