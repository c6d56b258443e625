package binding

import (
	"github.com/hhkbp2/mapbench"
	"github.com/maypok86/otter/v2"
)

// OtterMap adapts an unbounded otter cache.
type OtterMap struct {
	cache *otter.Cache[uint64, uint32]
}

func NewOtterMap(capacity int) (*OtterMap, error) {
	cache, err := otter.New(&otter.Options[uint64, uint32]{
		InitialCapacity: capacity,
	})
	if err != nil {
		return nil, err
	}
	return &OtterMap{
		cache: cache,
	}, nil
}

func (self *OtterMap) Pin() mapbench.Handle {
	return self
}

func (self *OtterMap) Close() error {
	self.cache.InvalidateAll()
	return nil
}

func (self *OtterMap) Get(key uint64) bool {
	_, ok := self.cache.GetIfPresent(key)
	return ok
}

func (self *OtterMap) Insert(key uint64) bool {
	_, inserted := self.cache.SetIfAbsent(key, 0)
	return inserted
}

func (self *OtterMap) Remove(key uint64) bool {
	_, ok := self.cache.Invalidate(key)
	return ok
}

func (self *OtterMap) Update(key uint64) bool {
	_, ok := self.cache.ComputeIfPresent(key, func(old uint32) (uint32, otter.ComputeOp) {
		return old + 1, otter.WriteOp
	})
	return ok
}
