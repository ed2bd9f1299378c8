package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nomadzpay/core/state"
	"nomadzpay/storage"
)

func TestBatchBuffersUntilCommit(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)

	batch := state.NewBatch(db)
	require.NoError(t, batch.Put([]byte("k"), []byte("v")))

	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Nil(t, got, "write reached backing store before commit")

	got, err = batch.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	require.NoError(t, batch.Commit())

	got, err = db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}

func TestBatchDiscardDropsWrites(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)

	batch := state.NewBatch(db)
	require.NoError(t, batch.Put([]byte("k"), []byte("v")))
	batch.Discard()
	require.NoError(t, batch.Commit())

	got, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBatchReadsFallThrough(t *testing.T) {
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	require.NoError(t, db.Put([]byte("k"), []byte("base")))

	batch := state.NewBatch(db)
	got, err := batch.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("base"), got)

	require.NoError(t, batch.Put([]byte("k"), []byte("override")))
	got, err = batch.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("override"), got)
}
