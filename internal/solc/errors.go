package solc

import (
	"errors"
	"fmt"
	"strings"
)

const maxAlternatives = 10

var (
	ErrVersionNotFound = errors.New("compiler version not found")
	ErrCompilerLoad    = errors.New("failed to load compiler")
)

// VersionNotFoundError is returned for a version absent from the release manifest.
type VersionNotFoundError struct {
	Version      string
	Alternatives []string
}

func newVersionNotFoundError(version string, known []string) *VersionNotFoundError {
	alternatives := make([]string, len(known))
	copy(alternatives, known)
	SortNewestFirst(alternatives)
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}
	return &VersionNotFoundError{Version: version, Alternatives: alternatives}
}

func (e *VersionNotFoundError) Error() string {
	if len(e.Alternatives) == 0 {
		return fmt.Sprintf("compiler version %q not found", e.Version)
	}
	return fmt.Sprintf("compiler version %q not found, available versions: %s",
		e.Version, strings.Join(e.Alternatives, ", "))
}

func (e *VersionNotFoundError) Is(target error) bool {
	return target == ErrVersionNotFound
}

// CompilerLoadError is returned when a compiler build cannot be fetched or started.
type CompilerLoadError struct {
	Version string
	Err     error
}

func (e *CompilerLoadError) Error() string {
	return fmt.Sprintf("failed to load compiler %s: %s", e.Version, e.Err)
}

func (e *CompilerLoadError) Unwrap() error {
	return e.Err
}

func (e *CompilerLoadError) Is(target error) bool {
	return target == ErrCompilerLoad
}
