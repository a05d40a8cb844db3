package imports

import (
	"errors"
	"fmt"
)

var (
	ErrImportFetch    = errors.New("failed to fetch import")
	ErrSourceNotFound = errors.New("source not found")
)

// FetchError describes an import that could not be fetched. Resolution drops such imports.
type FetchError struct {
	Name string
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch import %s (%s): %s", e.Name, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrImportFetch
}
