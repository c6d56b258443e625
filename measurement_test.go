package mapbench

import (
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
)

func TestNewMeasurement(t *testing.T) {
	m := NewMeasurement(4, 1000, 2*time.Second)
	require.Equal(t, uint64(4000), m.TotalOps)
	require.Equal(t, 4, m.Threads)
	require.Equal(t, 2000.0, m.Throughput)
	require.Equal(t, 2*time.Millisecond, m.Latency)

	m = NewMeasurement(4, 0, time.Second)
	require.Equal(t, uint64(0), m.TotalOps)
	require.Equal(t, time.Duration(0), m.Spent)
	require.Equal(t, 0.0, m.Throughput)
	require.Equal(t, time.Duration(0), m.Latency)
}

func TestParsePercentileValues(t *testing.T) {
	require.Equal(t, []float64{50, 99.9}, parsePercentileValues("50, 99.9", "95"))
	require.Equal(t, []float64{95, 99}, parsePercentileValues("fifty", "95,99"))
	require.Equal(t, []float64{95}, parsePercentileValues("101", "95"))
}

func TestHistogramConfigFromProperties(t *testing.T) {
	c, err := NewHistogramConfigFromProperties(NewProperties())
	require.Nil(t, err)
	require.Equal(t, 0, c.SampleEvery)
	require.Equal(t, int64(10000000000), c.Max)
	require.Equal(t, 3, c.Sig)
	require.Equal(t, []float64{95, 99}, c.Percentiles)

	p := NewProperties()
	p.Add(PropertySampleEvery, "16")
	p.Add(PropertyPercentiles, "50,99.99")
	c, err = NewHistogramConfigFromProperties(p)
	require.Nil(t, err)
	require.Equal(t, 16, c.SampleEvery)
	require.Equal(t, []float64{50, 99.99}, c.Percentiles)

	p.Add(PropertyHdrHistogramSig, "9")
	_, err = NewHistogramConfigFromProperties(p)
	require.NotNil(t, err)
}

func TestLatencyRecorder(t *testing.T) {
	c := HistogramConfig{Max: 1000000, Sig: 3, Percentiles: []float64{50, 100}}
	r1 := newLatencyRecorder(c)
	r2 := newLatencyRecorder(c)
	for i := int64(1); i <= 100; i++ {
		r1.Measure(i * 1000)
	}
	r2.Measure(0)
	r2.Measure(1 << 40)
	summary := mergeLatencies([]*latencyRecorder{r1, nil, r2}, c)
	require.NotNil(t, summary)
	require.Equal(t, int64(102), summary.Count)
	require.Equal(t, time.Duration(1), summary.Min)
	require.True(t, summary.Max >= 1000000*time.Nanosecond*999/1000)
	require.Equal(t, 2, len(summary.Percentiles))
	require.Equal(t, 50.0, summary.Percentiles[0].Percentile)
	median := summary.Percentiles[0].Value
	require.True(t, median >= 49*time.Microsecond && median <= 52*time.Microsecond)

	require.Nil(t, mergeLatencies([]*latencyRecorder{newLatencyRecorder(c)}, c))
}

func TestLatencySummaryString(t *testing.T) {
	s := &LatencySummary{
		Count: 3,
		Min:   time.Millisecond,
		Max:   3 * time.Second,
		Mean:  2 * time.Millisecond,
		Percentiles: []PercentileValue{
			{Percentile: 99.9, Value: 3 * time.Second},
		},
	}
	require.Equal(t, "Count=3, Max=3s, Min=1ms, Avg=2ms, 99.9=3s", s.String())
}
