package generator

import (
	"math/rand/v2"
	"strconv"
)

// IntegerGenerator is a generator capable of generating integers and strings.
type IntegerGenerator interface {
	Generator
	// NextInt returns the next value as an int. Implementations must call
	// SetLastInt() so that LastInt() and LastString() stay in sync.
	NextInt() int64
	LastInt() int64

	Mean() float64
}

// IntegerGeneratorBase holds the state shared by all integer generators:
// the last generated value and the random source to draw from.
type IntegerGeneratorBase struct {
	lastInt int64
	random  *rand.Rand
}

func NewIntegerGeneratorBase(last int64, r *rand.Rand) *IntegerGeneratorBase {
	return &IntegerGeneratorBase{
		lastInt: last,
		random:  r,
	}
}

// SetLastInt sets the last value to be generated.
func (self *IntegerGeneratorBase) SetLastInt(value int64) {
	self.lastInt = value
}

// NextString generates the next string in the distribution of g.
func (self *IntegerGeneratorBase) NextString(g IntegerGenerator) string {
	return strconv.FormatInt(g.NextInt(), 10)
}

func (self *IntegerGeneratorBase) LastInt() int64 {
	return self.lastInt
}

func (self *IntegerGeneratorBase) LastString() string {
	return strconv.FormatInt(self.LastInt(), 10)
}

// Rand returns the random source of this generator.
func (self *IntegerGeneratorBase) Rand() *rand.Rand {
	return self.random
}

// nextInt64 returns a value in [0, n). n <= 0 yields 0.
func (self *IntegerGeneratorBase) nextInt64(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return self.random.Int64N(n)
}

// nextFloat64 returns a value in [0.0, 1.0).
func (self *IntegerGeneratorBase) nextFloat64() float64 {
	return self.random.Float64()
}

// ConstantIntegerGenerator is a trivial integer generator that always returns
// the same value.
type ConstantIntegerGenerator struct {
	*IntegerGeneratorBase
	value int64
}

func NewConstantIntegerGenerator(i int64) *ConstantIntegerGenerator {
	return &ConstantIntegerGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(i-1, nil),
		value:                i,
	}
}

func (self *ConstantIntegerGenerator) NextInt() int64 {
	return self.value
}

func (self *ConstantIntegerGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *ConstantIntegerGenerator) Mean() float64 {
	return float64(self.value)
}

// UniformIntegerGenerator generates integers randomly uniform from
// an interval [lowerBound, upperBound].
type UniformIntegerGenerator struct {
	*IntegerGeneratorBase
	lowerBound int64
	upperBound int64
	interval   int64
}

func NewUniformIntegerGenerator(r *rand.Rand, lowerBound, upperBound int64) *UniformIntegerGenerator {
	if lowerBound > upperBound {
		lowerBound, upperBound = upperBound, lowerBound
	}
	return &UniformIntegerGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(lowerBound-1, r),
		lowerBound:           lowerBound,
		upperBound:           upperBound,
		interval:             upperBound - lowerBound + 1,
	}
}

func (self *UniformIntegerGenerator) NextInt() int64 {
	ret := self.lowerBound + self.nextInt64(self.interval)
	self.SetLastInt(ret)
	return ret
}

func (self *UniformIntegerGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *UniformIntegerGenerator) Mean() float64 {
	return float64(self.lowerBound+self.upperBound) / 2.0
}
