package main

import (
	"fmt"
	"io"

	tty "github.com/mattn/go-tty"
)

// serialPort is a board console opened in raw mode.
type serialPort struct {
	dev     *tty.TTY
	restore func() error
}

// openSerial opens the device at path, switches it to raw mode and sets the
// line speed. A zero baud leaves the speed untouched.
func openSerial(path string, baud int) (*serialPort, error) {
	dev, err := tty.OpenDevice(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	restore, err := dev.Raw()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("raw mode on %s: %w", path, err)
	}

	if baud != 0 {
		if err = setBaud(dev.Input().Fd(), baud); err != nil {
			restore()
			dev.Close()
			return nil, fmt.Errorf("line speed on %s: %w", path, err)
		}
	}

	return &serialPort{dev: dev, restore: restore}, nil
}

// Reader returns the receive side of the port.
func (p *serialPort) Reader() io.Reader {
	return p.dev.Input()
}

// Close restores the terminal settings and closes the device.
func (p *serialPort) Close() error {
	restoreErr := p.restore()
	if err := p.dev.Close(); err != nil {
		return err
	}
	return restoreErr
}
