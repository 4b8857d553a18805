package sqlite

import (
	"testing"

	"medication-adherence/internal/adapters/storage/storagetest"

	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Backend {
		s, err := Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return storagetest.Backend{Tx: s, Medications: s.Medications(), Doses: s.Doses()}
	})
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ensureDir(dir+"/nested/db.sqlite"))
	require.DirExists(t, dir+"/nested")
	require.NoError(t, ensureDir(":memory:"))
}
