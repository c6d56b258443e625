package binding

import (
	"sync"

	"github.com/hhkbp2/mapbench"
)

// MutexMap is a map guarded by one sync.Mutex.
type MutexMap struct {
	mu sync.Mutex
	m  map[uint64]uint32
}

func NewMutexMap(capacity int) *MutexMap {
	return &MutexMap{
		m: make(map[uint64]uint32, capacity),
	}
}

func (self *MutexMap) Pin() mapbench.Handle {
	return self
}

func (self *MutexMap) Close() error {
	return nil
}

func (self *MutexMap) Get(key uint64) bool {
	self.mu.Lock()
	_, ok := self.m[key]
	self.mu.Unlock()
	return ok
}

func (self *MutexMap) Insert(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.m[key]; ok {
		return false
	}
	self.m[key] = 0
	return true
}

func (self *MutexMap) Remove(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.m[key]; !ok {
		return false
	}
	delete(self.m, key)
	return true
}

func (self *MutexMap) Update(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	v, ok := self.m[key]
	if ok {
		self.m[key] = v + 1
	}
	return ok
}

// RWMutexMap is a map guarded by one sync.RWMutex, reads share the lock.
type RWMutexMap struct {
	mu sync.RWMutex
	m  map[uint64]uint32
}

func NewRWMutexMap(capacity int) *RWMutexMap {
	return &RWMutexMap{
		m: make(map[uint64]uint32, capacity),
	}
}

func (self *RWMutexMap) Pin() mapbench.Handle {
	return self
}

func (self *RWMutexMap) Close() error {
	return nil
}

func (self *RWMutexMap) Get(key uint64) bool {
	self.mu.RLock()
	_, ok := self.m[key]
	self.mu.RUnlock()
	return ok
}

func (self *RWMutexMap) Insert(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.m[key]; ok {
		return false
	}
	self.m[key] = 0
	return true
}

func (self *RWMutexMap) Remove(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	if _, ok := self.m[key]; !ok {
		return false
	}
	delete(self.m, key)
	return true
}

func (self *RWMutexMap) Update(key uint64) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	v, ok := self.m[key]
	if ok {
		self.m[key] = v + 1
	}
	return ok
}
