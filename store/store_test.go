package store

import (
	"testing"

	"github.com/dgraph-io/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/types"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadEmptyStoreReturnsNil(t *testing.T) {
	s := newTestStore(t)

	state, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, state, "missing document is not an error")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	original := types.SeedState()
	original.Sequence = 7
	original.TreasuryBalance = 42.5
	original.Wallets["axw1"].AccruedRevenue = 3.25
	require.NoError(t, s.Save(original))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, int64(7), loaded.Sequence)
	assert.InDelta(t, 42.5, loaded.TreasuryBalance, 1e-9)
	assert.InDelta(t, 3.25, loaded.Wallets["axw1"].AccruedRevenue, 1e-9)
	assert.Equal(t, original.Params, loaded.Params)
	assert.Len(t, loaded.Wallets, len(original.Wallets))
}

func TestSaveOverwritesCurrentDocument(t *testing.T) {
	s := newTestStore(t)

	state := types.SeedState()
	require.NoError(t, s.Save(state))
	state.Sequence = 99
	require.NoError(t, s.Save(state))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(99), loaded.Sequence)
}

func TestLoadCorruptDocumentErrors(t *testing.T) {
	s := newTestStore(t)

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(config.StateKeyCurrent), []byte("not json"))
	})
	require.NoError(t, err)

	state, err := s.Load()
	require.Error(t, err)
	assert.Nil(t, state)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)

	state := types.SeedState()
	state.Sequence = 25
	require.NoError(t, s.Snapshot(state))

	loaded, err := s.LoadSnapshot(25)
	require.NoError(t, err)
	assert.Equal(t, int64(25), loaded.Sequence)

	_, err = s.LoadSnapshot(26)
	require.Error(t, err, "no snapshot at that sequence")
}

func TestSnapshotServedFromCache(t *testing.T) {
	s := newTestStore(t)

	state := types.SeedState()
	state.Sequence = 50
	require.NoError(t, s.Snapshot(state))

	blob, ok := s.cache.Get(snapshotKey(50))
	require.True(t, ok, "snapshot lands in the cache on write")
	assert.NotEmpty(t, blob)

	loaded, err := s.LoadSnapshot(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), loaded.Sequence)
}
