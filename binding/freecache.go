package binding

import (
	"encoding/binary"

	"github.com/coocood/freecache"
	"github.com/hhkbp2/mapbench"
)

const (
	PropertyFreecacheBytesPerKey        = "freecache.bytesperkey"
	PropertyFreecacheBytesPerKeyDefault = "64"
)

var (
	freecacheInitialValue [4]byte
)

// FreecacheMap stores keys in a freecache ring buffer of bytesPerKey bytes
// per key of capacity. Keys are evicted only when a segment runs out of room.
type FreecacheMap struct {
	cache *freecache.Cache
}

func NewFreecacheMap(capacity, bytesPerKey int) *FreecacheMap {
	return &FreecacheMap{
		cache: freecache.NewCache(max(capacity, 1) * max(bytesPerKey, 1)),
	}
}

func (self *FreecacheMap) Pin() mapbench.Handle {
	return &freecacheHandle{cache: self.cache}
}

func (self *FreecacheMap) Close() error {
	self.cache.Clear()
	return nil
}

// EntryCount returns the number of stored keys.
func (self *FreecacheMap) EntryCount() int64 {
	return self.cache.EntryCount()
}

type freecacheHandle struct {
	cache *freecache.Cache
	key   [8]byte
	value [4]byte
}

func (self *freecacheHandle) encode(key uint64) []byte {
	binary.BigEndian.PutUint64(self.key[:], key)
	return self.key[:]
}

func (self *freecacheHandle) Get(key uint64) bool {
	_, err := self.cache.Peek(self.encode(key))
	return err == nil
}

func (self *freecacheHandle) Insert(key uint64) bool {
	prev, err := self.cache.GetOrSet(self.encode(key), freecacheInitialValue[:], 0)
	if err != nil {
		panic(err)
	}
	return prev == nil
}

func (self *freecacheHandle) Remove(key uint64) bool {
	return self.cache.Del(self.encode(key))
}

func (self *freecacheHandle) Update(key uint64) bool {
	found, _, err := self.cache.Update(self.encode(key),
		func(value []byte, found bool) ([]byte, bool, int) {
			if !found || len(value) != len(self.value) {
				return nil, false, 0
			}
			binary.BigEndian.PutUint32(self.value[:], binary.BigEndian.Uint32(value)+1)
			return self.value[:], true, 0
		})
	if err != nil {
		panic(err)
	}
	return found
}
