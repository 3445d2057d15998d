package registry

import "fmt"

// MissingParameterError reports a strict read of a path that was never
// set. It is always caller-recoverable: either supply a default via
// GetOr, or make sure the producing module ran first.
type MissingParameterError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q is not set", e.Path)
}

// WrongTypeError reports a typed read of a value whose dynamic type does
// not match what the caller asked for.
type WrongTypeError struct {
	Path string
	Want string
	Got  any
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("parameter %q holds %T, not %s", e.Path, e.Got, e.Want)
}
