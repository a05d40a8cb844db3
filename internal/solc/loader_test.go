package solc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testRelease(version string) *Release {
	return &Release{Version: version, Build: "commit.00000000", LongVersion: version + "+commit.00000000"}
}

func TestLoaderSharesConcurrentLoads(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := testRelease("0.8.20")
	compiler := &CompilerMock{FullVersionFunc: release.FullVersion}

	started := make(chan struct{})
	proceed := make(chan struct{})
	installer := &InstallerMock{
		InstallFunc: func(ctx context.Context, r *Release) (Compiler, error) {
			close(started)
			<-proceed
			return compiler, nil
		},
	}
	loader := NewLoader(installer, logging.Nop())

	const callers = 8
	results := make([]Compiler, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = loader.Load(context.Background(), release)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = loader.Load(context.Background(), release)
		}()
	}
	// Give followers a chance to join the in-flight load.
	time.Sleep(50 * time.Millisecond)
	close(proceed)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		require.Same(t, compiler, results[i])
	}
	require.Len(t, installer.InstallCalls(), 1)
	require.Equal(t, []string{"0.8.20+commit.00000000"}, loader.Loaded())

	c, err := loader.Load(t.Context(), release)
	require.NoError(t, err)
	require.Same(t, compiler, c)
	require.Len(t, installer.InstallCalls(), 1)
}

func TestLoaderError(t *testing.T) {
	defer goleak.VerifyNone(t)

	installer := &InstallerMock{
		InstallFunc: func(ctx context.Context, r *Release) (Compiler, error) {
			return nil, errors.New("download failed")
		},
	}
	loader := NewLoader(installer, logging.Nop())

	_, err := loader.Load(t.Context(), testRelease("0.8.20"))
	require.ErrorIs(t, err, ErrCompilerLoad)

	var loadErr *CompilerLoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "v0.8.20+commit.00000000", loadErr.Version)
	require.ErrorContains(t, err, "download failed")
	require.Empty(t, loader.Loaded())

	// Failures are not cached.
	_, err = loader.Load(t.Context(), testRelease("0.8.20"))
	require.Error(t, err)
	require.Len(t, installer.InstallCalls(), 2)
}

func TestLoaderCancelledCallerDoesNotAbortLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := testRelease("0.8.21")
	proceed := make(chan struct{})
	installed := make(chan struct{})
	installer := &InstallerMock{
		InstallFunc: func(ctx context.Context, r *Release) (Compiler, error) {
			defer close(installed)
			<-proceed
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &CompilerMock{}, nil
		},
	}
	loader := NewLoader(installer, logging.Nop())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := loader.Load(ctx, release)
	require.ErrorIs(t, err, context.Canceled)

	close(proceed)
	<-installed
	require.Eventually(t, func() bool {
		return len(loader.Loaded()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLoaderInvalidate(t *testing.T) {
	t.Parallel()

	installer := &InstallerMock{
		InstallFunc: func(ctx context.Context, r *Release) (Compiler, error) {
			return &CompilerMock{}, nil
		},
	}
	loader := NewLoader(installer, logging.Nop())

	for _, v := range []string{"0.8.21", "0.8.19"} {
		_, err := loader.Load(t.Context(), testRelease(v))
		require.NoError(t, err)
	}
	require.Equal(t, []string{"0.8.19+commit.00000000", "0.8.21+commit.00000000"}, loader.Loaded())

	loader.Invalidate()
	require.Empty(t, loader.Loaded())

	_, err := loader.Load(t.Context(), testRelease("0.8.19"))
	require.NoError(t, err)
	require.Len(t, installer.InstallCalls(), 3)
}
