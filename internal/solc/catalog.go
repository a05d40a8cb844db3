package solc

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/NilFoundation/solforge/common/logging"
)

//go:generate go run github.com/matryer/moq -out manifest_source_generated_mock.go -rm -stub -with-resets . ManifestSource

// ManifestSource provides the release manifest.
type ManifestSource interface {
	FetchManifest(ctx context.Context) (*Manifest, error)
}

// Catalog maps short compiler versions to releases. The manifest is fetched on first use
// and kept for the lifetime of the process; a failed fetch is not remembered.
type Catalog struct {
	source ManifestSource
	logger logging.Logger

	mu       sync.Mutex
	releases map[string]*Release
}

func NewCatalog(source ManifestSource, logger logging.Logger) *Catalog {
	return &Catalog{
		source: source,
		logger: logger,
	}
}

func (c *Catalog) load(ctx context.Context) (map[string]*Release, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.releases != nil {
		return c.releases, nil
	}

	manifest, err := c.source.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}
	c.releases = manifest.ReleasesMap()
	c.logger.Info().
		Int("releases", len(c.releases)).
		Str("latest", manifest.LatestRelease).
		Msg("Compiler release manifest loaded")
	return c.releases, nil
}

// ResolveVersion returns the release for the given short version ("0.8.20", "v0.8.20" is accepted too).
func (c *Catalog) ResolveVersion(ctx context.Context, version string) (*Release, error) {
	releases, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	short := NormalizeVersion(version)
	if r, ok := releases[short]; ok {
		return r, nil
	}
	return nil, newVersionNotFoundError(version, slices.Collect(maps.Keys(releases)))
}

// Versions returns all known releases, newest first.
func (c *Catalog) Versions(ctx context.Context) ([]*Release, error) {
	releases, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	versions := slices.Collect(maps.Keys(releases))
	SortNewestFirst(versions)

	res := make([]*Release, 0, len(versions))
	for _, v := range versions {
		res = append(res, releases[v])
	}
	return res, nil
}

// Invalidate drops the cached manifest; the next lookup fetches it again.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releases = nil
}

// Loaded reports whether the manifest has been fetched.
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.releases != nil
}
