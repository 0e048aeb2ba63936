package textatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for textatlas package.
var (
	// ErrNilFont is returned when compositing without a font resource.
	ErrNilFont = errors.New("textatlas: font resource is nil")

	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("textatlas: invalid dimensions")
)

// RequestError reports which request was rejected before compositing began.
// It wraps the underlying cause, typically a *text.WrapConfigError.
type RequestError struct {
	Index int
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("textatlas: request %d: %v", e.Index, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
