package kernel

// Error is the error type of boot code. It has to work before the Go
// allocator does, so errors.New is off limits: each Error is a package-level
// pointer that callers compare by identity.
type Error struct {
	// Module names the package that reported the error, for example "kmain".
	Module string

	// Message is returned by Error. It does not repeat Module.
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
