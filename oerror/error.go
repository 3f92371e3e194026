package oerror

import "fmt"

// AscentError is the error type returned by every package in this module.
type AscentError struct {
	Err string
}

// New returns an AscentError built from the format and arguments given.
func New(format string, args ...any) *AscentError {
	if len(args) == 0 {
		return &AscentError{Err: format}
	}
	return &AscentError{Err: fmt.Sprintf(format, args...)}
}

func (e *AscentError) Error() string {
	return e.Err
}
