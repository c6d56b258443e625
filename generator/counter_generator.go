package generator

import (
	"strconv"
	"sync/atomic"
)

// CounterGenerator generates a sequence of integers: start, start+1, ...
// It is safe for concurrent use.
type CounterGenerator struct {
	*IntegerGeneratorBase
	count atomic.Int64
}

func NewCounterGenerator(startCount int64) *CounterGenerator {
	object := &CounterGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(startCount-1, nil),
	}
	object.count.Store(startCount - 1)
	return object
}

func (self *CounterGenerator) NextInt() int64 {
	return self.count.Add(1)
}

// LastInt returns the value issued most recently by any caller.
func (self *CounterGenerator) LastInt() int64 {
	return self.count.Load()
}

func (self *CounterGenerator) LastString() string {
	return strconv.FormatInt(self.LastInt(), 10)
}

func (self *CounterGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *CounterGenerator) Mean() float64 {
	panic("unsupported operation")
}
