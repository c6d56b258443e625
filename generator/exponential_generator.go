package generator

import (
	"math"
	"math/rand/v2"
)

const (
	ExponentialPercentileDefault = "95"
	ExponentialFractionDefault   = "0.8571428571" // 1/7
)

// ExponentialGenerator produces a sequence of non-negative integers
// following an exponential distribution.
type ExponentialGenerator struct {
	*IntegerGeneratorBase
	gamma float64
}

func NewExponentialGeneratorByMean(r *rand.Rand, mean float64) *ExponentialGenerator {
	return &ExponentialGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(0, r),
		gamma:                1.0 / mean,
	}
}

// NewExponentialGenerator creates a generator where percentile% of the
// values fall in [0, theRange).
func NewExponentialGenerator(r *rand.Rand, percentile, theRange float64) *ExponentialGenerator {
	return &ExponentialGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(0, r),
		gamma:                -math.Log(1.0-percentile/100.0) / theRange,
	}
}

func (self *ExponentialGenerator) NextInt() int64 {
	// 1 - Float64() lies in (0, 1], which keeps the log finite
	next := int64(-math.Log(1.0-self.nextFloat64()) / self.gamma)
	self.SetLastInt(next)
	return next
}

func (self *ExponentialGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *ExponentialGenerator) Mean() float64 {
	return 1.0 / self.gamma
}
