package kernel

import (
	"errors"
	"testing"
)

func TestError(t *testing.T) {
	var (
		errNoFDT = &Error{Module: "kmain", Message: "no device tree passed by the boot loader"}
		errOOM   = &Error{Module: "mm", Message: "out of boot memory"}
	)

	specs := []struct {
		err    *Error
		expMsg string
	}{
		{errNoFDT, "no device tree passed by the boot loader"},
		{errOOM, "out of boot memory"},
		{&Error{Module: "early"}, ""},
	}

	for specIndex, spec := range specs {
		var err error = spec.err
		if got := err.Error(); got != spec.expMsg {
			t.Errorf("[spec %d] expected Error() to return %q; got %q", specIndex, spec.expMsg, got)
		}
	}

	// Errors are compared by identity: two values with the same text are
	// still different errors.
	if errors.Is(errNoFDT, &Error{Module: "kmain", Message: errNoFDT.Message}) {
		t.Error("expected distinct Error pointers not to match")
	}

	var wrapped error = errOOM
	if !errors.Is(wrapped, errOOM) {
		t.Error("expected an Error to match itself through the error interface")
	}
}
