package solc

import (
	"context"
	"slices"

	"github.com/NilFoundation/solforge/common/concurrent"
	"github.com/NilFoundation/solforge/common/logging"
	"golang.org/x/sync/singleflight"
)

// Loader loads compilers and keeps them for the lifetime of the process.
// Concurrent loads of the same uncached version share one installation.
type Loader struct {
	installer Installer
	compilers *concurrent.Map[string, Compiler]
	inflight  singleflight.Group
	logger    logging.Logger
}

func NewLoader(installer Installer, logger logging.Logger) *Loader {
	return &Loader{
		installer: installer,
		compilers: concurrent.NewMap[string, Compiler](),
		logger:    logger,
	}
}

// Load returns the compiler for the release, installing it on first use.
// Cancelling ctx stops waiting but does not abort an installation other callers may share.
func (l *Loader) Load(ctx context.Context, release *Release) (Compiler, error) {
	key := release.LongVersion
	if c, ok := l.compilers.Get(key); ok {
		return c, nil
	}

	ch := l.inflight.DoChan(key, func() (any, error) {
		if c, ok := l.compilers.Get(key); ok {
			return c, nil
		}

		l.logger.Debug().Str(logging.FieldCompilerVersion, release.FullVersion()).Msg("Loading compiler")
		c, err := l.installer.Install(context.WithoutCancel(ctx), release)
		if err != nil {
			return nil, &CompilerLoadError{Version: release.FullVersion(), Err: err}
		}
		l.compilers.Put(key, c)
		return c, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			l.logger.Error().Err(res.Err).Str(logging.FieldCompilerVersion, release.FullVersion()).Msg("Compiler load failed")
			return nil, res.Err
		}
		return res.Val.(Compiler), nil
	}
}

// Loaded returns long versions of the cached compilers, sorted.
func (l *Loader) Loaded() []string {
	res := make([]string, 0, l.compilers.Len())
	for k := range l.compilers.Iterate() {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Invalidate forgets all cached compilers. Loads already in flight still complete and are cached.
func (l *Loader) Invalidate() {
	l.compilers.Clear()
}
