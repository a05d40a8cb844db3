package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildVersionString(t *testing.T) {
	t.Parallel()

	s := BuildVersionString("solforge")
	require.True(t, strings.HasPrefix(s, "solforge\n"))
	require.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)

	client := BuildClientVersion("solforge")
	require.True(t, strings.HasPrefix(client, "solforge/"))
	require.NotContains(t, client, "\n")
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	require.Equal(t, "a-b", FormatVersion("{{ .X }}-{{ .Y }}", map[string]any{"X": "a", "Y": "b"}))
	require.Panics(t, func() {
		FormatVersion("{{ .X", nil)
	})
}
