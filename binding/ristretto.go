package binding

import (
	"sync"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hhkbp2/mapbench"
)

// RistrettoMap adapts a ristretto cache with room for twice the capacity.
// Ristretto applies new keys asynchronously, so writers are serialised and
// every insert waits until the key is visible. Reads take no lock.
type RistrettoMap struct {
	mu    sync.Mutex
	cache *ristretto.Cache[uint64, uint32]
}

func NewRistrettoMap(capacity int) (*RistrettoMap, error) {
	maxCost := int64(max(capacity, 1)) * 2
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, uint32]{
		NumCounters:        maxCost * 10,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoMap{
		cache: cache,
	}, nil
}

func (self *RistrettoMap) Pin() mapbench.Handle {
	return self
}

func (self *RistrettoMap) Close() error {
	self.cache.Close()
	return nil
}

func (self *RistrettoMap) Get(key uint64) bool {
	_, ok := self.cache.Get(key)
	return ok
}

func (self *RistrettoMap) Insert(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.cache.Get(key); ok {
		return false
	}
	for !self.cache.Set(key, 0, 1) {
		self.cache.Wait()
	}
	self.cache.Wait()
	return true
}

func (self *RistrettoMap) Remove(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.cache.Get(key); !ok {
		return false
	}
	self.cache.Del(key)
	return true
}

func (self *RistrettoMap) Update(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	v, ok := self.cache.Get(key)
	if ok {
		self.cache.Set(key, v+1, 1)
	}
	return ok
}
