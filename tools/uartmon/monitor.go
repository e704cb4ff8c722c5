package main

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"time"
)

// verdict is the outcome of watching a boot log.
type verdict int

const (
	// verdictEOF means the stream ended before anything conclusive was seen.
	verdictEOF verdict = iota

	// verdictExpected means a line matched the expect pattern.
	verdictExpected

	// verdictFailed means a line matched the fail pattern.
	verdictFailed

	// verdictIdle means the board stayed silent for longer than the idle
	// timeout; after an early panic this is the expected outcome.
	verdictIdle
)

func (v verdict) String() string {
	switch v {
	case verdictExpected:
		return "expected output seen"
	case verdictFailed:
		return "failure output seen"
	case verdictIdle:
		return "console went idle"
	default:
		return "end of stream"
	}
}

// exitCode maps a verdict to the process exit status.
func (v verdict) exitCode() int {
	switch v {
	case verdictExpected:
		return 0
	case verdictFailed:
		return 1
	case verdictIdle:
		return 2
	default:
		return 3
	}
}

// readChunkSize is the read size used when pulling bytes off the serial line.
const readChunkSize = 256

// monitor watches the byte stream coming out of a board's early console.
type monitor struct {
	// expect and fail are matched against every complete line; fail is
	// checked first. Either may be nil.
	expect *regexp.Regexp
	fail   *regexp.Regexp

	// idle is the longest silence tolerated before giving up. Zero
	// disables the watchdog.
	idle time.Duration

	// echo receives every byte read, unmodified. May be nil.
	echo io.Writer

	line bytes.Buffer
}

type chunk struct {
	data []byte
	err  error
}

// run reads r until a line matches one of the patterns, the stream ends or
// the idle watchdog fires. The reader is drained in a separate goroutine so
// that a blocked read cannot stall the watchdog; that goroutine is left
// behind if run returns early.
func (m *monitor) run(r io.Reader) (verdict, error) {
	chunks := make(chan chunk)
	go func() {
		for {
			buf := make([]byte, readChunkSize)
			n, err := r.Read(buf)
			chunks <- chunk{data: buf[:n], err: err}
			if err != nil {
				return
			}
		}
	}()

	var watchdog <-chan time.Time
	for {
		var timer *time.Timer
		if m.idle > 0 {
			timer = time.NewTimer(m.idle)
			watchdog = timer.C
		}

		select {
		case c := <-chunks:
			if timer != nil {
				timer.Stop()
			}

			if v, done := m.consume(c.data); done {
				return v, nil
			}

			if c.err != nil {
				if errors.Is(c.err, io.EOF) {
					return m.flushLine(), nil
				}
				return verdictEOF, c.err
			}
		case <-watchdog:
			return verdictIdle, nil
		}
	}
}

// consume echoes data and checks every line it completes.
func (m *monitor) consume(data []byte) (verdict, bool) {
	if m.echo != nil && len(data) != 0 {
		m.echo.Write(data)
	}

	for _, b := range data {
		if b != '\n' {
			m.line.WriteByte(b)
			continue
		}

		if v, done := m.checkLine(); done {
			return v, true
		}
	}

	return verdictEOF, false
}

// flushLine checks a trailing line that was not newline terminated.
func (m *monitor) flushLine() verdict {
	if m.line.Len() == 0 {
		return verdictEOF
	}

	v, _ := m.checkLine()
	return v
}

func (m *monitor) checkLine() (verdict, bool) {
	line := bytes.TrimRight(m.line.Bytes(), "\r")
	defer m.line.Reset()

	switch {
	case m.fail != nil && m.fail.Match(line):
		return verdictFailed, true
	case m.expect != nil && m.expect.Match(line):
		return verdictExpected, true
	}

	return verdictEOF, false
}
