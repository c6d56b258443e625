package generator

import (
	"math/rand/v2"
)

const (
	// The zipfian population the scrambled generator draws from before
	// hashing into the requested interval.
	ScrambledZipfianItemCount = int64(10000000000)
	// Zeta of ScrambledZipfianItemCount items with ZipfianConstant.
	ScrambledZipfianZetan = float64(26.46902820178302)
)

// ScrambledZipfianGenerator produces a zipfian distribution whose popular
// items are scattered across the interval rather than clustered at its start.
// Construction is constant time regardless of the interval size.
type ScrambledZipfianGenerator struct {
	*IntegerGeneratorBase
	gen       *ZipfianGenerator
	min       int64
	max       int64
	itemCount int64
}

func NewScrambledZipfianGenerator(r *rand.Rand, min, max int64) *ScrambledZipfianGenerator {
	if min > max {
		min, max = max, min
	}
	return &ScrambledZipfianGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(min, r),
		gen: NewZipfianGenerator(r, 0, ScrambledZipfianItemCount-1,
			ZipfianConstant, ScrambledZipfianZetan),
		min:       min,
		max:       max,
		itemCount: max - min + 1,
	}
}

func NewScrambledZipfianGeneratorByItems(r *rand.Rand, items int64) *ScrambledZipfianGenerator {
	return NewScrambledZipfianGenerator(r, 0, items-1)
}

func (self *ScrambledZipfianGenerator) NextInt() int64 {
	ret := self.min + FNVHash64(self.gen.NextInt())%self.itemCount
	self.SetLastInt(ret)
	return ret
}

func (self *ScrambledZipfianGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *ScrambledZipfianGenerator) Mean() float64 {
	return float64(self.min+self.max) / 2.0
}
