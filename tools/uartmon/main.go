// Command uartmon watches the early console of a board attached to a serial
// port and turns what it sees into an exit status, so that boot runs can be
// scripted:
//
//	0  a line matched -expect
//	1  a line matched -fail
//	2  the console stayed silent for -idle (for example after an early panic)
//	3  the stream ended or an I/O error occurred
//	4  the command line was invalid
//
// Every byte received is copied to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"
)

var (
	devFlag    = flag.String("dev", "", "serial device the board console is attached to")
	baudFlag   = flag.Int("baud", 115200, "line speed; 0 leaves the current setting alone")
	expectFlag = flag.String("expect", "", "regexp for a line that marks a successful boot")
	failFlag   = flag.String("fail", "", "regexp for a line that marks a failed boot")
	idleFlag   = flag.Duration("idle", 0, "give up after the console has been silent this long; 0 waits forever")
)

// exitUsage is the exit status for an invalid command line.
const exitUsage = 4

// usageError marks errors caused by bad flags rather than by the board.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// errExitCode returns the exit status for a run that failed with err.
func errExitCode(err error) int {
	var uerr usageError
	if errors.As(err, &uerr) {
		return exitUsage
	}
	return verdictEOF.exitCode()
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[uartmon] error: %s\n", err.Error())
	os.Exit(errExitCode(err))
}

// compileFlag compiles pattern, treating an empty pattern as "no pattern".
func compileFlag(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, usageError{fmt.Errorf("-%s: %w", name, err)}
	}
	return re, nil
}

func newMonitor(expect, fail string, idle time.Duration) (*monitor, error) {
	var (
		m   = &monitor{idle: idle, echo: os.Stdout}
		err error
	)

	if m.expect, err = compileFlag("expect", expect); err != nil {
		return nil, err
	}
	if m.fail, err = compileFlag("fail", fail); err != nil {
		return nil, err
	}

	return m, nil
}

func main() {
	flag.Parse()
	if *devFlag == "" {
		exit(usageError{errors.New("missing -dev")})
	}

	m, err := newMonitor(*expectFlag, *failFlag, *idleFlag)
	if err != nil {
		exit(err)
	}

	port, err := openSerial(*devFlag, *baudFlag)
	if err != nil {
		exit(err)
	}

	v, err := m.run(port.Reader())
	if closeErr := port.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		exit(err)
	}

	fmt.Fprintf(os.Stderr, "\n[uartmon] %s\n", v)
	os.Exit(v.exitCode())
}
