package imports

import (
	"context"

	"github.com/NilFoundation/solforge/common/logging"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultCacheSize = 1024

// Store is a persistent source store keyed by canonical path.
type Store interface {
	Get(path string) (string, bool, error)
	Put(path, content string) error
}

// CachedFetcher keeps fetched sources in memory and, optionally, in a persistent store.
// Pinned mirror sources never change, so entries are not expired.
type CachedFetcher struct {
	fetcher Fetcher
	memory  *lru.Cache[string, string]
	store   Store
	logger  logging.Logger
}

var _ Fetcher = (*CachedFetcher)(nil)

// NewCachedFetcher wraps fetcher. store may be nil.
func NewCachedFetcher(fetcher Fetcher, size int, store Store, logger logging.Logger) (*CachedFetcher, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	memory, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedFetcher{
		fetcher: fetcher,
		memory:  memory,
		store:   store,
		logger:  logger,
	}, nil
}

func (c *CachedFetcher) Fetch(ctx context.Context, name, path string) (string, error) {
	if text, ok := c.memory.Get(path); ok {
		return text, nil
	}

	if c.store != nil {
		text, ok, err := c.store.Get(path)
		if err != nil {
			c.logger.Warn().Err(err).Str(logging.FieldSourcePath, path).Msg("Source cache read failed")
		} else if ok {
			c.memory.Add(path, text)
			return text, nil
		}
	}

	text, err := c.fetcher.Fetch(ctx, name, path)
	if err != nil {
		return "", err
	}

	c.memory.Add(path, text)
	if c.store != nil {
		if err := c.store.Put(path, text); err != nil {
			c.logger.Warn().Err(err).Str(logging.FieldSourcePath, path).Msg("Source cache write failed")
		}
	}
	return text, nil
}

func (c *CachedFetcher) Len() int {
	return c.memory.Len()
}
