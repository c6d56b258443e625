package generator

const (
	fnvOffsetBasis64 = uint64(0xCBF29CE484222325)
	fnvPrime64       = uint64(1099511628211)
)

// FNVHash64 hashes the eight octets of value with 64 bit FNV-1a and returns
// a non-negative result.
func FNVHash64(value int64) int64 {
	v := uint64(value)
	h := fnvOffsetBasis64
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	ret := int64(h)
	if ret < 0 {
		ret = -ret
		if ret < 0 {
			// math.MinInt64
			ret = 0
		}
	}
	return ret
}

// ScrambleKey maps a key index to a key with the splitmix64 finalizer.
// The mapping is a bijection on uint64, so distinct indices always give
// distinct keys.
func ScrambleKey(index uint64) uint64 {
	z := index + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
