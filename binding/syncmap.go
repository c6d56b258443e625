package binding

import (
	"sync"

	"github.com/hhkbp2/mapbench"
)

// SyncMap adapts sync.Map. Its Insert reports whether the key was already
// present, as LoadOrStore does, and the engine flips the result.
type SyncMap struct {
	m sync.Map
}

func NewSyncMap() *SyncMap {
	return &SyncMap{}
}

func (self *SyncMap) Pin() mapbench.Handle {
	return self
}

func (self *SyncMap) Close() error {
	self.m.Clear()
	return nil
}

func (self *SyncMap) InsertReportsPresent() bool {
	return true
}

func (self *SyncMap) Get(key uint64) bool {
	_, ok := self.m.Load(key)
	return ok
}

func (self *SyncMap) Insert(key uint64) bool {
	_, loaded := self.m.LoadOrStore(key, uint32(0))
	return loaded
}

func (self *SyncMap) Remove(key uint64) bool {
	_, loaded := self.m.LoadAndDelete(key)
	return loaded
}

func (self *SyncMap) Update(key uint64) bool {
	for {
		v, ok := self.m.Load(key)
		if !ok {
			return false
		}
		if self.m.CompareAndSwap(key, v, v.(uint32)+1) {
			return true
		}
	}
}
