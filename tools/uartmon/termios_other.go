//go:build !linux

package main

import "errors"

// setBaud is only implemented on Linux. Elsewhere, configure the line speed
// with stty and run with -baud 0.
func setBaud(fd uintptr, baud int) error {
	return errors.New("setting the line speed is only supported on linux")
}
