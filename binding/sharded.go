package binding

import (
	"runtime"
	"sync"

	"github.com/hhkbp2/mapbench"
)

const (
	PropertyShardCount        = "sharded.shards"
	PropertyShardCountDefault = "0"
)

// ShardedMap splits the key space over RWMutex guarded shards selected by
// a pluggable hasher.
type ShardedMap struct {
	shards    []*shard
	shardMask uint64
	hasher    Hasher
}

type shard struct {
	mu    sync.RWMutex
	items map[uint64]uint32
}

// DefaultShardCount returns the smallest power of two not less than four
// times the number of CPUs.
func DefaultShardCount() int {
	return nextPowerOfTwo(4 * runtime.NumCPU())
}

func nextPowerOfTwo(n int) int {
	ret := 1
	for ret < n {
		ret <<= 1
	}
	return ret
}

// NewShardedMap creates a map of shardCount shards, rounded up to a power of
// two, holding about capacity keys in total.
func NewShardedMap(shardCount int, hasher Hasher, capacity int) *ShardedMap {
	if shardCount <= 0 {
		shardCount = DefaultShardCount()
	}
	shardCount = nextPowerOfTwo(shardCount)
	object := &ShardedMap{
		shards:    make([]*shard, shardCount),
		shardMask: uint64(shardCount - 1),
		hasher:    hasher,
	}
	perShard := capacity / shardCount
	for i := 0; i < shardCount; i++ {
		object.shards[i] = &shard{
			items: make(map[uint64]uint32, perShard),
		}
	}
	return object
}

func (self *ShardedMap) getShard(key uint64) *shard {
	return self.shards[self.hasher(key)&self.shardMask]
}

// Count returns the total number of keys.
func (self *ShardedMap) Count() int {
	count := 0
	for _, s := range self.shards {
		s.mu.RLock()
		count += len(s.items)
		s.mu.RUnlock()
	}
	return count
}

func (self *ShardedMap) Pin() mapbench.Handle {
	return self
}

func (self *ShardedMap) Close() error {
	for _, s := range self.shards {
		s.mu.Lock()
		s.items = nil
		s.mu.Unlock()
	}
	return nil
}

func (self *ShardedMap) Get(key uint64) bool {
	s := self.getShard(key)
	s.mu.RLock()
	_, ok := s.items[key]
	s.mu.RUnlock()
	return ok
}

func (self *ShardedMap) Insert(key uint64) bool {
	s := self.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = 0
	return true
}

func (self *ShardedMap) Remove(key uint64) bool {
	s := self.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	return true
}

func (self *ShardedMap) Update(key uint64) bool {
	s := self.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if ok {
		s.items[key] = v + 1
	}
	return ok
}
