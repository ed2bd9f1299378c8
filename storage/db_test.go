package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemDBMissingKeyIsNotAnError(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	got, err := db.Get([]byte("missing"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemDBPutGet(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	// Stored values must not alias caller buffers.
	got[0] = 'x'
	again, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), again)
}

func TestLevelDBPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	db, err := NewLevelDB(dir)
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	db.Close()

	reopened, err := NewLevelDB(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	missing, err := reopened.Get([]byte("absent"))
	require.NoError(t, err)
	require.Nil(t, missing)
}
