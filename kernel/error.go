package kernel

// Error describes a kernel error. Kernel errors are declared as package-level
// pointers to the Error structure so callers can compare them by identity and
// so that reporting an error on a draw path never allocates.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
