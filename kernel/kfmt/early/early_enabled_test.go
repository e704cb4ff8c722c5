//go:build earlyprintk

package early

import (
	"bytes"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/freedeaths/RT-Xen/kernel/cpu"
	"github.com/freedeaths/RT-Xen/kernel/driver/uart/pl011"
	"github.com/freedeaths/RT-Xen/kernel/mm"
	"github.com/freedeaths/RT-Xen/kernel/mm/fixmap"
	"github.com/freedeaths/RT-Xen/kernel/platform"
)

// mockConsole records what would have reached the UART.
type mockConsole struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	flushes int
	halted  bool

	// writesAfterHalt counts bytes sent once haltFn has been entered.
	writesAfterHalt int
}

func (c *mockConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.halted {
		c.writesAfterHalt += len(p)
	}
	return c.buf.Write(p)
}

func (c *mockConsole) Flush() {
	c.mu.Lock()
	c.flushes++
	c.mu.Unlock()
}

func (c *mockConsole) markHalted() {
	c.mu.Lock()
	c.halted = true
	c.mu.Unlock()
}

func (c *mockConsole) snapshot() (string, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String(), c.flushes, c.writesAfterHalt
}

func mockOutput(t *testing.T) *mockConsole {
	mock := &mockConsole{}
	out = mock
	t.Cleanup(func() {
		out = &uart
		haltFn = cpu.Halt
	})
	return mock
}

func TestUARTVirtAddr(t *testing.T) {
	if exp := Resolve(fixmap.ConsoleAddr, platform.UARTPhysBase, mm.PageOffsetMask); UARTVirtAddr != exp {
		t.Fatalf("expected UARTVirtAddr to be %x; got %x", exp, UARTVirtAddr)
	}

	if uart.Base != UARTVirtAddr {
		t.Fatalf("expected the UART to be driven at %x; got %x", UARTVirtAddr, uart.Base)
	}

	slot, ok := fixmap.SlotFromAddress(UARTVirtAddr)
	if !ok || slot != fixmap.Console {
		t.Fatalf("expected %x to fall in the console fixmap slot; got slot %d (ok: %t)", UARTVirtAddr, slot, ok)
	}

	if got, exp := mm.PageOffset(UARTVirtAddr), mm.PageOffset(platform.UARTPhysBase); got != exp {
		t.Fatalf("expected page offset %x to be preserved; got %x", exp, got)
	}

	if !Enabled {
		t.Fatal("expected Enabled to be true with the earlyprintk tag")
	}
}

func TestPrintf(t *testing.T) {
	mock := mockOutput(t)

	// mute vet warnings about malformed printf formatting strings
	printfn := Printf

	printfn("%d items\n", 3)
	printfn("slot %#x\n", fixmap.ConsoleAddr)

	got, flushes, _ := mock.snapshot()
	if exp := "3 items\nslot 0x400000\n"; got != exp {
		t.Fatalf("expected UART to receive %q; got %q", exp, got)
	}

	if flushes != 0 {
		t.Fatalf("expected Printf not to wait for the UART to drain; got %d flushes", flushes)
	}
}

func TestPrintfDrivesUART(t *testing.T) {
	type regWrite struct {
		addr uintptr
		val  uint32
	}

	var (
		writes  []regWrite
		frReads int
	)

	restore := pl011.SetRegisterAccess(
		func(addr uintptr) uint32 {
			if addr != UARTVirtAddr+0x18 {
				t.Errorf("expected only FR reads; got read of %x", addr)
			}
			frReads++
			return 0
		},
		func(addr uintptr, val uint32) {
			writes = append(writes, regWrite{addr, val})
		},
	)
	defer restore()

	Printf("%d items\n", 3)

	exp := "3 items\n"
	if len(writes) != len(exp) {
		t.Fatalf("expected %d DR writes; got %d: %v", len(exp), len(writes), writes)
	}

	for i, w := range writes {
		if w.addr != UARTVirtAddr {
			t.Errorf("expected write %d to target DR at %x; got %x", i, UARTVirtAddr, w.addr)
		}
		if w.val != uint32(exp[i]) {
			t.Errorf("expected write %d to be %q; got %q", i, exp[i], rune(w.val))
		}
	}

	if frReads != len(exp) {
		t.Errorf("expected one FIFO check per byte (%d); got %d", len(exp), frReads)
	}
}

func TestPanicf(t *testing.T) {
	mock := mockOutput(t)

	var (
		haltCalls    int
		flushedFirst bool
	)
	haltFn = func() {
		haltCalls++
		_, flushes, _ := mock.snapshot()
		flushedFirst = flushes == 1
		mock.markHalted()
	}

	Panicf("fatal: %s\n", "oom")

	got, _, afterHalt := mock.snapshot()
	if exp := "fatal: oom\n"; got != exp {
		t.Fatalf("expected UART to receive %q; got %q", exp, got)
	}

	if haltCalls != 1 {
		t.Fatalf("expected haltFn to be called once; got %d", haltCalls)
	}

	if !flushedFirst {
		t.Fatal("expected the UART to be drained before halting")
	}

	if afterHalt != 0 {
		t.Fatalf("expected no bytes after the halt; got %d", afterHalt)
	}
}

func TestPanicfNeverReturns(t *testing.T) {
	if runtime.GOARCH == "arm64" {
		t.Skip("cpu.Halt executes WFI on arm64")
	}

	mock := mockOutput(t)
	haltFn = func() {
		mock.markHalted()
		cpu.Halt()
	}

	returned := make(chan struct{})
	go func() {
		Panicf("fatal: %s\n", "oom")
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("expected Panicf to never return")
	case <-time.After(100 * time.Millisecond):
	}

	got, _, afterHalt := mock.snapshot()
	if got != "fatal: oom\n" {
		t.Fatalf("expected UART to receive %q; got %q", "fatal: oom\n", got)
	}

	if afterHalt != 0 {
		t.Fatalf("expected no bytes after the halt; got %d", afterHalt)
	}
}
