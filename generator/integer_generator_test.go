package generator

import (
	"fmt"
	"github.com/hhkbp2/testify/require"
	"testing"
)

func TestConstantIntegerGenerator(t *testing.T) {
	value := int64(100)
	var g IntegerGenerator
	g = NewConstantIntegerGenerator(value)
	require.Equal(t, value-1, g.LastInt())
	for i := 0; i < 10; i++ {
		require.Equal(t, value, g.NextInt())
		require.Equal(t, value-1, g.LastInt())
		require.Equal(t, fmt.Sprintf("%d", value), g.NextString())
		require.Equal(t, fmt.Sprintf("%d", value-1), g.LastString())
		require.Equal(t, float64(value), g.Mean())
	}
}

func TestNewRandIsDeterministic(t *testing.T) {
	r1 := NewRand(42, 1)
	r2 := NewRand(42, 1)
	r3 := NewRand(42, 2)
	same := true
	for i := 0; i < 16; i++ {
		a, b, c := r1.Uint64(), r2.Uint64(), r3.Uint64()
		require.Equal(t, a, b)
		if a != c {
			same = false
		}
	}
	require.False(t, same)
}
