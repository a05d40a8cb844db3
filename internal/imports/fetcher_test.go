package imports

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/stretchr/testify/require"
)

func TestMapFetcher(t *testing.T) {
	t.Parallel()

	f := MapFetcher{"Base.sol": "by name", ns + "Other.sol": "by path"}

	text, err := f.Fetch(t.Context(), "Base.sol", ns+"Base.sol")
	require.NoError(t, err)
	require.Equal(t, "by name", text)

	text, err = f.Fetch(t.Context(), "Other.sol", ns+"Other.sol")
	require.NoError(t, err)
	require.Equal(t, "by path", text)

	_, err = f.Fetch(t.Context(), "Missing.sol", ns+"Missing.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestDirFetcher(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "Lib.sol"), []byte("library Lib {}"), 0o600))
	depDir := filepath.Join(root, "node_modules", "@openzeppelin", "contracts", "utils")
	require.NoError(t, os.MkdirAll(depDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(depDir, "Context.sol"), []byte("contract Context {}"), 0o600))

	f := NewDirFetcher(root)

	text, err := f.Fetch(t.Context(), "lib/Lib.sol", ns+"lib/Lib.sol")
	require.NoError(t, err)
	require.Equal(t, "library Lib {}", text)

	text, err = f.Fetch(t.Context(), ns+"utils/Context.sol", ns+"utils/Context.sol")
	require.NoError(t, err)
	require.Equal(t, "contract Context {}", text)

	_, err = f.Fetch(t.Context(), "Missing.sol", ns+"Missing.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)

	_, err = f.Fetch(t.Context(), "../escape.sol", ns+"escape.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestChainFetcher(t *testing.T) {
	t.Parallel()

	failing := &FetcherMock{
		FetchFunc: func(ctx context.Context, name, path string) (string, error) {
			return "", errors.New("boom")
		},
	}
	chain := ChainFetcher{MapFetcher{"A.sol": "a"}, nil, failing, MapFetcher{"B.sol": "b"}}

	text, err := chain.Fetch(t.Context(), "A.sol", ns+"A.sol")
	require.NoError(t, err)
	require.Equal(t, "a", text)
	require.Empty(t, failing.FetchCalls())

	text, err = chain.Fetch(t.Context(), "B.sol", ns+"B.sol")
	require.NoError(t, err)
	require.Equal(t, "b", text)

	_, err = chain.Fetch(t.Context(), "C.sol", ns+"C.sol")
	require.ErrorContains(t, err, "boom")
	require.NotErrorIs(t, err, ErrSourceNotFound)

	_, err = ChainFetcher{MapFetcher{}}.Fetch(t.Context(), "C.sol", ns+"C.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestHttpMirrorFetcher(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/npm/@openzeppelin/contracts@5.0.2/utils/Context.sol" {
			_, _ = w.Write([]byte("contract Context {}"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHttpMirrorFetcher(
		srv.URL+"/npm/{{.Package}}@{{.Version}}/{{.Path}}", ns, "5.0.2", srv.Client(), logging.Nop())

	url, err := f.Url(ns + "utils/Context.sol")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/npm/@openzeppelin/contracts@5.0.2/utils/Context.sol", url)

	text, err := f.Fetch(t.Context(), ns+"utils/Context.sol", ns+"utils/Context.sol")
	require.NoError(t, err)
	require.Equal(t, "contract Context {}", text)

	_, err = f.Fetch(t.Context(), ns+"Missing.sol", ns+"Missing.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)
	require.EqualValues(t, 2, hits.Load())

	// Paths outside of the namespace are not requested at all.
	_, err = f.Fetch(t.Context(), "Local.sol", "Local.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)
	require.EqualValues(t, 2, hits.Load())
}

func TestDefaultMirrorUrl(t *testing.T) {
	t.Parallel()

	f := NewHttpMirrorFetcher("", "", "", nil, logging.Nop())
	url, err := f.Url(ns + "token/ERC20/ERC20.sol")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.jsdelivr.net/npm/@openzeppelin/contracts@5.0.2/token/ERC20/ERC20.sol", url)
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memoryStore) Get(path string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.data[path]
	return text, ok, nil
}

func (m *memoryStore) Put(path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[path] = content
	return nil
}

func TestCachedFetcher(t *testing.T) {
	t.Parallel()

	inner := &FetcherMock{
		FetchFunc: func(ctx context.Context, name, path string) (string, error) {
			if path == ns+"Missing.sol" {
				return "", ErrSourceNotFound
			}
			return "source of " + path, nil
		},
	}
	store := &memoryStore{data: map[string]string{ns + "Stored.sol": "stored"}}

	f, err := NewCachedFetcher(inner, 2, store, logging.Nop())
	require.NoError(t, err)

	for range 3 {
		text, err := f.Fetch(t.Context(), "A.sol", ns+"A.sol")
		require.NoError(t, err)
		require.Equal(t, "source of "+ns+"A.sol", text)
	}
	require.Len(t, inner.FetchCalls(), 1)
	require.Equal(t, "source of "+ns+"A.sol", store.data[ns+"A.sol"])

	text, err := f.Fetch(t.Context(), "Stored.sol", ns+"Stored.sol")
	require.NoError(t, err)
	require.Equal(t, "stored", text)
	require.Len(t, inner.FetchCalls(), 1)
	require.Equal(t, 2, f.Len())

	_, err = f.Fetch(t.Context(), "Missing.sol", ns+"Missing.sol")
	require.ErrorIs(t, err, ErrSourceNotFound)
	_, ok := store.data[ns+"Missing.sol"]
	require.False(t, ok)
}
