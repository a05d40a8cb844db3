package imports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:generate go run github.com/matryer/moq -out fetcher_generated_mock.go -rm -stub -with-resets . Fetcher

// Fetcher loads the text of an imported source unit. Implementations return an error
// matching ErrSourceNotFound when they do not serve the unit.
type Fetcher interface {
	Fetch(ctx context.Context, name, path string) (string, error)
}

// MapFetcher serves in-memory sources keyed by source-unit name or canonical path.
type MapFetcher map[string]string

func (m MapFetcher) Fetch(_ context.Context, name, path string) (string, error) {
	if text, ok := m[name]; ok {
		return text, nil
	}
	if text, ok := m[path]; ok {
		return text, nil
	}
	return "", ErrSourceNotFound
}

// DirFetcher reads sources from a local directory. Names rooted in the dependency namespace are
// looked up under node_modules as well.
type DirFetcher struct {
	root string
}

func NewDirFetcher(root string) *DirFetcher {
	return &DirFetcher{root: root}
}

func (f *DirFetcher) Fetch(_ context.Context, name, _ string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %s is outside of %s", ErrSourceNotFound, name, f.root)
	}

	candidates := []string{filepath.Join(f.root, filepath.FromSlash(name))}
	if strings.HasPrefix(name, "@") {
		candidates = append(candidates, filepath.Join(f.root, "node_modules", filepath.FromSlash(name)))
	}
	for _, fileName := range candidates {
		data, err := os.ReadFile(fileName)
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", ErrSourceNotFound
}

// ChainFetcher asks its fetchers in order and returns the first hit.
type ChainFetcher []Fetcher

func (c ChainFetcher) Fetch(ctx context.Context, name, path string) (string, error) {
	var errs []error
	for _, f := range c {
		if f == nil {
			continue
		}
		text, err := f.Fetch(ctx, name, path)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !errors.Is(err, ErrSourceNotFound) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return "", ErrSourceNotFound
}
