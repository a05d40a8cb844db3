package sourcecache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const path = "@openzeppelin/contracts/utils/Context.sol"

	s, err := Open(dir, "5.0.2")
	require.NoError(t, err)

	_, ok, err := s.Get(path)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put(path, "contract Context {}"))
	text, ok, err := s.Get(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "contract Context {}", text)
	require.NoError(t, s.Close())

	// Survives reopening.
	s, err = Open(dir, "5.0.2")
	require.NoError(t, err)
	text, ok, err = s.Get(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "contract Context {}", text)
	require.NoError(t, s.Close())

	// Other dependency versions do not see it.
	s, err = Open(dir, "4.9.6")
	require.NoError(t, err)
	defer s.Close()
	_, ok, err = s.Get(path)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreInMemory(t *testing.T) {
	t.Parallel()

	s, err := Open("", "5.0.2")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("a.sol", "a"))
	require.NoError(t, s.Put("b.sol", "b"))
	require.NoError(t, s.Put("a.sol", "a2"))

	n, err := s.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	text, ok, err := s.Get("a.sol")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a2", text)
}

func TestStoreCompressesSources(t *testing.T) {
	t.Parallel()

	s, err := Open("", "5.0.2")
	require.NoError(t, err)
	defer s.Close()

	source := strings.Repeat("function f() public pure returns (uint256) { return 1; }\n", 500)
	require.NoError(t, s.Put("big.sol", source))

	var stored int
	require.NoError(t, s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(s.key("big.sol"))
		if err != nil {
			return err
		}
		stored = int(item.ValueSize())
		return nil
	}))
	require.Less(t, stored, len(source)/10)

	text, ok, err := s.Get("big.sol")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, source, text)
}

func TestStoreOpenFailureReleasesResources(t *testing.T) {
	// goleak needs the package to itself.
	defer goleak.VerifyNone(t)

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	s, err := Open(file, "5.0.2")
	require.ErrorContains(t, err, "failed to open source cache")
	require.Nil(t, s)
}
