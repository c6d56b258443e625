package generator

import (
	"math"
	"math/rand/v2"
)

const (
	ZipfianConstant = float64(0.99)
)

// zetaStatic computes the zeta constant needed for the distribution,
// incrementally from st items (whose sum is initialSum) up to n items.
func zetaStatic(st, n int64, theta, initialSum float64) float64 {
	sum := initialSum
	for i := st; i < n; i++ {
		sum += 1 / math.Pow(float64(i+1), theta)
	}
	return sum
}

// ZipfianGenerator generates a sequence of items following a zipfian
// distribution: item min is the most popular, min+1 the second most popular,
// and so on. Use ScrambledZipfianGenerator to scatter the popular items
// across the interval instead.
//
// Construction computes zeta over all items, which is linear in the number
// of items. NewZipfianGenerator accepts a precomputed zeta to skip that.
//
// The algorithm is from "Quickly Generating Billion-Record Synthetic
// Databases", Jim Gray et al, SIGMOD 1994.
type ZipfianGenerator struct {
	*IntegerGeneratorBase
	items int64
	base  int64
	// The zipfian constant to use.
	zipfianConstant float64
	// Computed parameters for generating the distribution.
	alpha, zetan, eta, theta, zeta2theta float64
}

// NewZipfianGenerator creates a zipfian generator for items between min and
// max (inclusive) using the precomputed zeta value zetan.
func NewZipfianGenerator(
	r *rand.Rand, min, max int64, zipfianConstant, zetan float64) *ZipfianGenerator {

	items := max - min + 1
	theta := zipfianConstant
	zeta2theta := zetaStatic(0, 2, theta, 0)
	object := &ZipfianGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(min, r),
		items:                items,
		base:                 min,
		zipfianConstant:      zipfianConstant,
		alpha:                1.0 / (1.0 - theta),
		zetan:                zetan,
		eta:                  (1 - math.Pow(2.0/float64(items), 1-theta)) / (1 - zeta2theta/zetan),
		theta:                theta,
		zeta2theta:           zeta2theta,
	}
	return object
}

// NewZipfianGeneratorByInterval creates a zipfian generator for items between
// min and max (inclusive), computing zeta.
func NewZipfianGeneratorByInterval(r *rand.Rand, min, max int64) *ZipfianGenerator {
	return NewZipfianGenerator(r, min, max, ZipfianConstant,
		zetaStatic(0, max-min+1, ZipfianConstant, 0))
}

// NewZipfianGeneratorByItems creates a zipfian generator for items in
// [0, items).
func NewZipfianGeneratorByItems(r *rand.Rand, items int64) *ZipfianGenerator {
	return NewZipfianGeneratorByInterval(r, 0, items-1)
}

// NextInt generates the next item, skewed toward lower integers.
func (self *ZipfianGenerator) NextInt() int64 {
	u := self.nextFloat64()
	uz := u * self.zetan
	var ret int64
	switch {
	case uz < 1.0:
		ret = self.base
	case uz < 1.0+math.Pow(0.5, self.theta):
		ret = self.base + 1
	default:
		ret = self.base + int64(float64(self.items)*math.Pow(self.eta*u-self.eta+1.0, self.alpha))
	}
	if ret >= self.base+self.items {
		ret = self.base + self.items - 1
	}
	self.SetLastInt(ret)
	return ret
}

func (self *ZipfianGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *ZipfianGenerator) Mean() float64 {
	panic("unsupported operation")
}
