package store

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/willf/bloom"
)

// SnapshotCache sits in front of Badger for snapshot reads. The bloom filter
// short-circuits lookups for sequences that were never stored, the LRU keeps
// recently decoded documents hot.
type SnapshotCache struct {
	cache       *lru.Cache[string, []byte]
	bloomFilter *bloom.BloomFilter
	mutex       sync.RWMutex
}

// NewSnapshotCache creates a cache holding up to size encoded snapshots.
func NewSnapshotCache(size int, expectedItems uint, falsePositiveRate float64) (*SnapshotCache, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &SnapshotCache{
		cache:       c,
		bloomFilter: bloom.NewWithEstimates(expectedItems, falsePositiveRate),
	}, nil
}

// Get retrieves an encoded snapshot from the cache.
func (c *SnapshotCache) Get(key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.bloomFilter.TestString(key) {
		return nil, false
	}
	return c.cache.Get(key)
}

// Add stores an encoded snapshot in the cache.
func (c *SnapshotCache) Add(key string, value []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.bloomFilter.AddString(key)
	c.cache.Add(key, value)
}
