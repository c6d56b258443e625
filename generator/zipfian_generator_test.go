package generator

import (
	"github.com/hhkbp2/testify/require"
	"strconv"
	"testing"
)

func TestZipfianGenerator(t *testing.T) {
	runTestZipfianGenerator(t, func(min, max int64) IntegerGenerator {
		return NewZipfianGeneratorByInterval(NewRand(1, 2), min, max)
	})
}

func TestScrambledZipfianGenerator(t *testing.T) {
	runTestZipfianGenerator(t, func(min, max int64) IntegerGenerator {
		return NewScrambledZipfianGenerator(NewRand(1, 2), min, max)
	})
}

func runTestZipfianGenerator(t *testing.T, f func(min, max int64) IntegerGenerator) {
	min := int64(1000)
	max := int64(2000)
	g := f(min, max)
	total := 10000
	for i := 0; i < total; i++ {
		last := g.NextInt()
		require.True(t, last >= min && last <= max)
		require.Equal(t, last, g.LastInt())
		str := g.NextString()
		v, err := strconv.ParseInt(str, 0, 64)
		require.Nil(t, err)
		require.True(t, v >= min && v <= max)
	}
}

func TestZipfianGeneratorSkew(t *testing.T) {
	g := NewZipfianGeneratorByItems(NewRand(4, 4), 1000)
	total := 100000
	head := 0
	for i := 0; i < total; i++ {
		if g.NextInt() < 10 {
			head++
		}
	}
	// the first 1% of the items draw far more than 1% of the requests
	require.True(t, head > total/5)
}
