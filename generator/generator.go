// Package generator provides the random value generators used to build
// operation logs: weighted operation choosers and key index distributions.
//
// Every generator draws from the *rand.Rand it was constructed with, so a
// generator must stay confined to the goroutine that owns its source.
package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Generator is an expression that generates a sequence of string values,
// following some distribution (uniform, zipfian, sequential, etc).
type Generator interface {
	// NextString generates the next string in the distribution.
	NextString() string
	// LastString returns the previous string generated by the distribution,
	// e.g. the string returned by the last NextString() call.
	// Calling LastString() should not advance the distribution or have any
	// side effect. If NextString() has not yet been called, LastString()
	// should return something reasonable.
	LastString() string
}

func NewErrorf(format string, args ...interface{}) error {
	return errors.New(fmt.Sprintf(format, args...))
}

// NewRand returns a PCG backed source for the given seed pair.
// Distinct streams with the same seed never share state.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}
