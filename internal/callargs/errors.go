package callargs

import (
	"errors"
	"fmt"
)

var (
	ErrArgumentFormat = errors.New("malformed argument")
	ErrArgumentCount  = errors.New("wrong number of array elements")
)

// FormatError is returned when text cannot be read as a value of the type.
type FormatError struct {
	Type     string
	Expected string
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s argument, expected %s: %s", e.Type, e.Expected, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrArgumentFormat
}

// CountError is returned when a fixed array gets the wrong number of elements.
type CountError struct {
	Type string
	Want int
	Got  int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("invalid %s argument: expected %d elements, got %d", e.Type, e.Want, e.Got)
}

func (e *CountError) Is(target error) bool {
	return target == ErrArgumentCount
}
