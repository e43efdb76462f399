package types

// Store is the persistence port injected into the node. The whole AppState is
// written as one document after every mutation; Load returns (nil, nil) when
// no document exists yet so the caller can fall back to the seed.
type Store interface {
	Load() (*AppState, error)
	Save(state *AppState) error

	// Snapshot persists an additional copy keyed by the state's sequence
	// number, giving a cheap mutation history next to the current document.
	Snapshot(state *AppState) error
	LoadSnapshot(sequence int64) (*AppState, error)

	Close() error
}
