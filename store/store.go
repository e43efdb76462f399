// Package store persists the whole AppState as one JSON document in BadgerDB:
// the current document under a fixed key, plus sequence-keyed snapshots for
// history.
package store

import (
	"fmt"
	"log"

	"github.com/dgraph-io/badger"
	jsoniter "github.com/json-iterator/go"

	"github.com/axon-labs/axonsim/config"
	"github.com/axon-labs/axonsim/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	snapshotCacheSize   = 64
	snapshotCacheItems  = 10000
	snapshotCacheFPRate = 0.01
)

// BadgerStore implements types.Store on top of BadgerDB.
type BadgerStore struct {
	db    *badger.DB
	cache *SnapshotCache
}

// NewBadgerStore opens (or creates) the database under dataDir.
func NewBadgerStore(dataDir string) (*BadgerStore, error) {
	db, err := OpenDatabase(dataDir)
	if err != nil {
		return nil, fmt.Errorf("error opening state database: %v", err)
	}
	cache, err := NewSnapshotCache(snapshotCacheSize, snapshotCacheItems, snapshotCacheFPRate)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating snapshot cache: %v", err)
	}
	return &BadgerStore{db: db, cache: cache}, nil
}

// Save writes the current document wholesale.
func (s *BadgerStore) Save(state *types.AppState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshalling app state: %v", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(config.StateKeyCurrent), blob)
	})
	if err != nil {
		return fmt.Errorf("error storing app state in BadgerDB: %v", err)
	}
	return nil
}

// Load reads the current document. A missing document returns (nil, nil) so
// the node can fall back to the seed; a corrupt one returns an error for the
// same fallback with a warning.
func (s *BadgerStore) Load() (*types.AppState, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(config.StateKeyCurrent))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading app state from BadgerDB: %v", err)
	}

	state := &types.AppState{}
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, fmt.Errorf("error unmarshalling app state: %v", err)
	}
	if state.Wallets == nil {
		return nil, fmt.Errorf("persisted app state has no wallets")
	}
	return state, nil
}

func snapshotKey(sequence int64) string {
	return fmt.Sprintf("%s%d", config.SnapshotKeyPrefix, sequence)
}

// Snapshot stores an additional copy keyed by the state's sequence number.
func (s *BadgerStore) Snapshot(state *types.AppState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshalling snapshot: %v", err)
	}
	key := snapshotKey(state.Sequence)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
	if err != nil {
		return fmt.Errorf("error storing snapshot %s: %v", key, err)
	}
	s.cache.Add(key, blob)
	log.Printf("INFO: stored state snapshot at sequence %d", state.Sequence)
	return nil
}

// LoadSnapshot retrieves a historical document by sequence number.
func (s *BadgerStore) LoadSnapshot(sequence int64) (*types.AppState, error) {
	key := snapshotKey(sequence)

	blob, ok := s.cache.Get(key)
	if !ok {
		err := s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			blob, err = item.ValueCopy(nil)
			return err
		})
		if err == badger.ErrKeyNotFound {
			return nil, fmt.Errorf("no snapshot at sequence %d", sequence)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading snapshot %s: %v", key, err)
		}
		s.cache.Add(key, blob)
	}

	state := &types.AppState{}
	if err := json.Unmarshal(blob, state); err != nil {
		return nil, fmt.Errorf("error unmarshalling snapshot %s: %v", key, err)
	}
	return state, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
