package generator

import (
	"github.com/hhkbp2/testify/require"
	"strconv"
	"testing"
)

func TestHotspotIntegerGenerator(t *testing.T) {
	lowerBound := int64(1000)
	upperBound := int64(2000)
	hotsetFraction := float64(0.2)
	hotOpnFraction := float64(0.99)
	var g IntegerGenerator
	hig := NewHotspotIntegerGenerator(NewRand(1, 1), lowerBound, upperBound, hotsetFraction, hotOpnFraction)
	g = hig
	interval := upperBound - lowerBound + 1
	hotsetHigh := lowerBound + int64(float64(interval)*hotsetFraction)
	total := 10000
	hot := 0
	for i := 0; i < total; i++ {
		last := g.NextInt()
		require.True(t, last >= lowerBound && last <= upperBound)
		require.Equal(t, last, g.LastInt())
		if last < hotsetHigh {
			hot++
		}
	}
	require.True(t, hot > total*97/100)
	str := g.NextString()
	last, err := strconv.ParseInt(str, 0, 64)
	require.Nil(t, err)
	require.True(t, last >= lowerBound && last <= upperBound)
	require.Equal(t, str, g.LastString())
}

func TestHotspotIntegerGeneratorFractionOutOfRange(t *testing.T) {
	hig := NewHotspotIntegerGenerator(NewRand(1, 1), 10, 0, 1.5, -1)
	require.Equal(t, int64(0), hig.GetLowerBound())
	require.Equal(t, int64(10), hig.GetUpperBound())
	require.Equal(t, float64(0), hig.GetHotsetFraction())
	require.Equal(t, float64(0), hig.GetHotOpnFraction())
	for i := 0; i < 100; i++ {
		v := hig.NextInt()
		require.True(t, v >= 0 && v <= 10)
	}
}
