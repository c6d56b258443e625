package binding

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/hhkbp2/mapbench"
)

// LockedLRU is a least recently used cache bounded by the collection
// capacity and guarded by one mutex. Reads move keys to the front, so they
// take the exclusive lock as well.
type LockedLRU struct {
	mu  sync.Mutex
	lru *simplelru.LRU[uint64, uint32]
}

func NewLockedLRU(capacity int) (*LockedLRU, error) {
	if capacity <= 0 {
		capacity = 1
	}
	l, err := simplelru.NewLRU[uint64, uint32](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &LockedLRU{
		lru: l,
	}, nil
}

// Len returns the number of cached keys.
func (self *LockedLRU) Len() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.lru.Len()
}

func (self *LockedLRU) Pin() mapbench.Handle {
	return self
}

func (self *LockedLRU) Close() error {
	self.mu.Lock()
	self.lru.Purge()
	self.mu.Unlock()
	return nil
}

func (self *LockedLRU) Get(key uint64) bool {
	self.mu.Lock()
	_, ok := self.lru.Get(key)
	self.mu.Unlock()
	return ok
}

func (self *LockedLRU) Insert(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.lru.Contains(key) {
		return false
	}
	self.lru.Add(key, 0)
	return true
}

func (self *LockedLRU) Remove(key uint64) bool {
	self.mu.Lock()
	ok := self.lru.Remove(key)
	self.mu.Unlock()
	return ok
}

func (self *LockedLRU) Update(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	v, ok := self.lru.Peek(key)
	if ok {
		self.lru.Add(key, v+1)
	}
	return ok
}
