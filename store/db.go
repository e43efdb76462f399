package store

import (
	"github.com/dgraph-io/badger"
)

// OpenDatabase opens the BadgerDB instance backing the state store. Badger's
// own logger is silenced; anything worth reporting surfaces as a returned
// error.
func OpenDatabase(dataDir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dataDir).WithLogger(nil)
	return badger.Open(opts)
}
