package compilation

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrCompilation        = errors.New("compilation failed")
	ErrNoContractProduced = errors.New("no contract produced")
)

// CompilationError aggregates the error-severity diagnostics of a compiler run.
type CompilationError struct {
	Diagnostics []string
}

func (e *CompilationError) Error() string {
	return "compilation failed:\n" + strings.Join(e.Diagnostics, "\n")
}

func (e *CompilationError) Is(target error) bool {
	return target == ErrCompilation
}
