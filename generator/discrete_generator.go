package generator

import (
	"math/rand/v2"
)

type Pair struct {
	Weight float64
	Value  string
}

// DiscreteGenerator generates a distribution by choosing from a discrete set
// of values, each picked with probability weight/sum(weights).
// Values with a zero weight are never chosen.
type DiscreteGenerator struct {
	random    *rand.Rand
	values    []*Pair
	sum       float64
	lastIndex int
}

func NewDiscreteGenerator(r *rand.Rand) *DiscreteGenerator {
	return &DiscreteGenerator{
		random:    r,
		values:    make([]*Pair, 0),
		lastIndex: -1,
	}
}

// NextIndex chooses the next value and returns its index in the order the
// values were added.
func (self *DiscreteGenerator) NextIndex() int {
	if self.sum <= 0 {
		panic("discrete generator without any positive weight")
	}
	value := self.random.Float64() * self.sum
	last := -1
	for i, p := range self.values {
		if p.Weight <= 0 {
			continue
		}
		last = i
		if value < p.Weight {
			self.lastIndex = i
			return i
		}
		value -= p.Weight
	}
	// rounding may leave a sliver past the last positive weight
	self.lastIndex = last
	return last
}

func (self *DiscreteGenerator) NextString() string {
	return self.values[self.NextIndex()].Value
}

func (self *DiscreteGenerator) LastString() string {
	if self.lastIndex < 0 {
		return self.NextString()
	}
	return self.values[self.lastIndex].Value
}

func (self *DiscreteGenerator) AddValue(weight float64, value string) {
	self.values = append(self.values, &Pair{
		Weight: weight,
		Value:  value,
	})
	if weight > 0 {
		self.sum += weight
	}
}

// Len returns the number of values added.
func (self *DiscreteGenerator) Len() int {
	return len(self.values)
}
