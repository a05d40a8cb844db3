package solc

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/NilFoundation/solforge/common/logging"
	"github.com/stretchr/testify/require"
)

func TestHttpManifestSource(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(listJson))
	}))
	defer srv.Close()

	source := NewHttpManifestSource(srv.URL+"/linux-amd64/list.json", srv.Client(), logging.Nop())
	m, err := source.FetchManifest(t.Context())
	require.NoError(t, err)
	require.Equal(t, "0.8.20", m.LatestRelease)
	require.Len(t, m.Releases, 2)
	require.EqualValues(t, 2, hits.Load())
}

func TestHttpManifestSourcePermanentErrors(t *testing.T) {
	t.Parallel()

	for name, handler := range map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				handler(w, r)
			}))
			defer srv.Close()

			source := NewHttpManifestSource(srv.URL, srv.Client(), logging.Nop())
			_, err := source.FetchManifest(t.Context())
			require.ErrorIs(t, err, errPermanentHttp)
			require.EqualValues(t, 1, hits.Load())
		})
	}
}
