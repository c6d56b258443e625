package binding

import (
	"encoding/binary"
	"hash/maphash"
	"sort"

	"github.com/cespare/xxhash/v2"
	g "github.com/hhkbp2/mapbench/generator"
	"github.com/spaolacci/murmur3"
)

// Hasher maps a key onto the shard index space of a sharded map.
type Hasher func(key uint64) uint64

var (
	hasherMakers = map[string]func() Hasher{
		"maphash": func() Hasher {
			seed := maphash.MakeSeed()
			return func(key uint64) uint64 {
				return maphash.Comparable(seed, key)
			}
		},
		"xxhash": func() Hasher {
			return func(key uint64) uint64 {
				var b [8]byte
				binary.LittleEndian.PutUint64(b[:], key)
				return xxhash.Sum64(b[:])
			}
		},
		"murmur3": func() Hasher {
			return func(key uint64) uint64 {
				var b [8]byte
				binary.LittleEndian.PutUint64(b[:], key)
				return murmur3.Sum64(b[:])
			}
		},
		"fnv": func() Hasher {
			return func(key uint64) uint64 {
				return uint64(g.FNVHash64(int64(key)))
			}
		},
	}
)

// NewHasher returns the hasher of the given kind.
func NewHasher(kind string) (Hasher, error) {
	maker, ok := hasherMakers[kind]
	if !ok {
		return nil, g.NewErrorf("unknown hasher: %s, expect one of %v", kind, HasherKinds())
	}
	return maker(), nil
}

func HasherKinds() []string {
	kinds := make([]string, 0, len(hasherMakers))
	for k := range hasherMakers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
