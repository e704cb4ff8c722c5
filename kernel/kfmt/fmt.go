// Package kfmt implements printf-style formatting that is safe to call before
// the Go allocator and the itables have been set up.
package kfmt

import (
	"io"
	"math/bits"
	"unsafe"
)

// numBufSize is large enough for a uint64 in base 8.
const numBufSize = 32

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

var (
	errMissingArg   = []byte("%!(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	numBuf [numBufSize]byte

	// oneByte is the scratch buffer for writing single characters. Slicing
	// a string into a []byte would allocate.
	oneByte [1]byte
)

// fmtSpec holds the flags and width parsed from a single conversion.
type fmtSpec struct {
	width     int
	leftAlign bool
	zeroPad   bool
	alt       bool
}

// Fprintf formats args according to format and writes the result to w, one
// small write at a time. It never allocates. A nil w discards the output.
//
// Supported conversions:
//
//	%s       string or []byte
//	%d %i    signed or unsigned integer in base 10
//	%u       integer in base 10; signed values print as their two's
//	         complement at the argument's size, so int8(-1) is 255
//	%x %X    integer in base 16
//	%o       integer in base 8
//	%p       uintptr or unsafe.Pointer as 0x-prefixed hex
//	%c       byte, rune or int as a single character
//	%t       bool
//	%%       a literal percent sign
//
// Each conversion accepts the flags '-' (left align), '0' (zero padding) and
// '#' (0x / 0 prefix for hex and octal) followed by a decimal width. The C
// length modifiers h, l, ll and z are skipped so that printk-style format
// strings work unchanged.
//
// Problems are reported inline, in the style of fmt: %!(MISSING),
// %!(WRONGTYPE), %!(NOVERB) and one %!(EXTRA) per unused argument.
//
// The io.Stringer and error interfaces are not consulted: the itables may not
// be initialized when this runs.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		fmtLen   = len(format)
		verb     byte
		spec     fmtSpec
	)

	for i := 0; i < fmtLen; {
		if format[i] != '%' {
			writeByte(w, format[i])
			i++
			continue
		}

		spec = fmtSpec{}
		i++

	parseFlags:
		for ; i < fmtLen; i++ {
			switch format[i] {
			case '-':
				spec.leftAlign = true
			case '0':
				spec.zeroPad = true
			case '#':
				spec.alt = true
			default:
				break parseFlags
			}
		}

		for ; i < fmtLen && format[i] >= '0' && format[i] <= '9'; i++ {
			spec.width = spec.width*10 + int(format[i]-'0')
		}

		for ; i < fmtLen && isLengthModifier(format[i]); i++ {
		}

		if i == fmtLen {
			writeBytes(w, errNoVerb)
			break
		}

		verb = format[i]
		i++

		switch verb {
		case '%':
			writeByte(w, '%')
			continue
		case 's', 'd', 'i', 'u', 'x', 'X', 'o', 'p', 'c', 't':
		default:
			writeBytes(w, errNoVerb)
			continue
		}

		if argIndex >= len(args) {
			writeBytes(w, errMissingArg)
			continue
		}

		switch verb {
		case 's':
			fmtString(w, args[argIndex], &spec)
		case 'c':
			fmtChar(w, args[argIndex], &spec)
		case 't':
			fmtBool(w, args[argIndex], &spec)
		default:
			fmtInt(w, args[argIndex], verb, &spec)
		}
		argIndex++
	}

	for ; argIndex < len(args); argIndex++ {
		writeBytes(w, errExtraArg)
	}
}

func isLengthModifier(ch byte) bool {
	return ch == 'h' || ch == 'l' || ch == 'z'
}

// fmtBool prints "true" or "false" for bool value v.
func fmtBool(w io.Writer, v interface{}, spec *fmtSpec) {
	bVal, ok := v.(bool)
	if !ok {
		writeBytes(w, errWrongArgType)
		return
	}

	out := falseValue
	if bVal {
		out = trueValue
	}

	padLeft(w, spec, len(out))
	writeBytes(w, out)
	padRight(w, spec, len(out))
}

// fmtString prints a string or []byte value v, space padded to spec.width.
func fmtString(w io.Writer, v interface{}, spec *fmtSpec) {
	switch castedVal := v.(type) {
	case string:
		padLeft(w, spec, len(castedVal))
		for i := 0; i < len(castedVal); i++ {
			writeByte(w, castedVal[i])
		}
		padRight(w, spec, len(castedVal))
	case []byte:
		padLeft(w, spec, len(castedVal))
		writeBytes(w, castedVal)
		padRight(w, spec, len(castedVal))
	default:
		writeBytes(w, errWrongArgType)
	}
}

// fmtChar prints a single character. Runes outside the ASCII range are
// truncated to their low byte; the UART knows nothing about UTF-8.
func fmtChar(w io.Writer, v interface{}, spec *fmtSpec) {
	var ch byte

	switch castedVal := v.(type) {
	case byte:
		ch = castedVal
	case rune:
		ch = byte(castedVal)
	case int:
		ch = byte(castedVal)
	default:
		writeBytes(w, errWrongArgType)
		return
	}

	padLeft(w, spec, 1)
	writeByte(w, ch)
	padRight(w, spec, 1)
}

// fmtInt prints integer v for the d, i, u, x, X, o and p verbs.
func fmtInt(w io.Writer, v interface{}, verb byte, spec *fmtSpec) {
	uval, neg, size, ok := toUint64(v)
	if !ok {
		writeBytes(w, errWrongArgType)
		return
	}

	if verb == 'u' && neg {
		uval, neg = -uval, false
		if size < 64 {
			uval &= 1<<size - 1
		}
	}

	var (
		base   = uint64(10)
		digits = lowerDigits
		prefix string
		pos    = numBufSize
	)

	switch verb {
	case 'x':
		base = 16
		if spec.alt {
			prefix = "0x"
		}
	case 'X':
		base, digits = 16, upperDigits
		if spec.alt {
			prefix = "0X"
		}
	case 'o':
		base = 8
		if spec.alt && uval != 0 {
			prefix = "0"
		}
	case 'p':
		base, prefix = 16, "0x"
	}

	for {
		pos--
		numBuf[pos] = digits[uval%base]
		uval /= base
		if uval == 0 {
			break
		}
	}

	var (
		numLen  = numBufSize - pos
		headLen = len(prefix)
	)
	if neg {
		headLen++
	}

	if !spec.leftAlign && !spec.zeroPad {
		repeat(w, ' ', spec.width-numLen-headLen)
	}

	if neg {
		writeByte(w, '-')
	}
	for i := 0; i < len(prefix); i++ {
		writeByte(w, prefix[i])
	}

	if spec.zeroPad && !spec.leftAlign {
		repeat(w, '0', spec.width-numLen-headLen)
	}

	writeBytes(w, numBuf[pos:])

	if spec.leftAlign {
		repeat(w, ' ', spec.width-numLen-headLen)
	}
}

// toUint64 returns the magnitude of integer v, whether it was negative and
// the size of its type in bits.
func toUint64(v interface{}) (uval uint64, neg bool, size uint, ok bool) {
	var sval int64

	switch castedVal := v.(type) {
	case uint8:
		return uint64(castedVal), false, 8, true
	case uint16:
		return uint64(castedVal), false, 16, true
	case uint32:
		return uint64(castedVal), false, 32, true
	case uint64:
		return castedVal, false, 64, true
	case uint:
		return uint64(castedVal), false, bits.UintSize, true
	case uintptr:
		return uint64(castedVal), false, bits.UintSize, true
	case unsafe.Pointer:
		return uint64(uintptr(castedVal)), false, bits.UintSize, true
	case int8:
		sval, size = int64(castedVal), 8
	case int16:
		sval, size = int64(castedVal), 16
	case int32:
		sval, size = int64(castedVal), 32
	case int64:
		sval, size = castedVal, 64
	case int:
		sval, size = int64(castedVal), bits.UintSize
	default:
		return 0, false, 0, false
	}

	if sval < 0 {
		return uint64(-sval), true, size, true
	}

	return uint64(sval), false, size, true
}

func padLeft(w io.Writer, spec *fmtSpec, valLen int) {
	if !spec.leftAlign {
		repeat(w, ' ', spec.width-valLen)
	}
}

func padRight(w io.Writer, spec *fmtSpec, valLen int) {
	if spec.leftAlign {
		repeat(w, ' ', spec.width-valLen)
	}
}

// repeat writes count copies of ch. A non-positive count writes nothing.
func repeat(w io.Writer, ch byte, count int) {
	for ; count > 0; count-- {
		writeByte(w, ch)
	}
}

func writeByte(w io.Writer, ch byte) {
	oneByte[0] = ch
	writeBytes(w, oneByte[:])
}

// writeBytes hides p from escape analysis before handing it to w. The
// compiler cannot see through the io.Writer call, would flag p as escaping
// and would then heap-allocate the argument slice of every Fprintf call.
func writeBytes(w io.Writer, p []byte) {
	if w == nil {
		return
	}

	realWrite(w, noEscape(unsafe.Pointer(&p)))
}

func realWrite(w io.Writer, bufPtr unsafe.Pointer) {
	w.Write(*(*[]byte)(bufPtr))
}

// noEscape hides a pointer from escape analysis. It mirrors the helper of the
// same name in runtime/stubs.go.
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
