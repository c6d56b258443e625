package mapbench

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Measurement is the result of one run.
type Measurement struct {
	TotalOps uint64
	Threads  int
	Spent    time.Duration
	// Operations per second over all threads.
	Throughput float64
	// Spent divided by the operations of one thread. It is a mean proxy
	// for the latency of one operation, not a percentile.
	Latency time.Duration
	// Operations which found (or did not find) the state they expected,
	// e.g. a Get of a present key or an Insert of an absent one.
	Hits   uint64
	Misses uint64
	// Latency percentiles, when sampling was enabled.
	Sampled *LatencySummary
}

// NewMeasurement derives throughput and latency. Runs without any operation
// report zero elapsed work.
func NewMeasurement(threads int, opsPerThread int, spent time.Duration) *Measurement {
	m := &Measurement{
		TotalOps: uint64(threads) * uint64(opsPerThread),
		Threads:  threads,
	}
	if m.TotalOps == 0 {
		return m
	}
	m.Spent = spent
	if spent > 0 {
		m.Throughput = float64(m.TotalOps) / spent.Seconds()
	}
	m.Latency = spent / time.Duration(opsPerThread)
	return m
}

func (self *Measurement) String() string {
	return fmt.Sprintf("total_ops=%d\tthreads=%d\tspent=%s\tlatency=%s\tthroughput=%.0fop/s",
		self.TotalOps, self.Threads, self.Spent.Round(100*time.Microsecond),
		self.Latency, self.Throughput)
}

// PercentileValue is the latency at one percentile.
type PercentileValue struct {
	Percentile float64       `json:"percentile"`
	Value      time.Duration `json:"value"`
}

// LatencySummary summarises sampled operation latencies.
type LatencySummary struct {
	Count       int64             `json:"count"`
	Min         time.Duration     `json:"min"`
	Max         time.Duration     `json:"max"`
	Mean        time.Duration     `json:"mean"`
	Percentiles []PercentileValue `json:"percentiles"`
}

func (self *LatencySummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Count=%d, Max=%s, Min=%s, Avg=%s", self.Count, self.Max, self.Min, self.Mean)
	for _, p := range self.Percentiles {
		fmt.Fprintf(&b, ", %s=%s", strconv.FormatFloat(p.Percentile, 'f', -1, 64), p.Value)
	}
	return b.String()
}

// HistogramConfig configures the latency histograms of sampled runs.
type HistogramConfig struct {
	// Record one operation out of SampleEvery. 0 disables sampling.
	SampleEvery int
	// Highest trackable value in nanoseconds.
	Max         int64
	Sig         int
	Percentiles []float64
}

var (
	DefaultHistogramConfig = HistogramConfig{
		Max:         10000000000,
		Sig:         3,
		Percentiles: []float64{50, 90, 99, 99.9},
	}
)

// Helper function to parse the given percentile value string.
func parsePercentileValues(prop, defaultValue string) []float64 {
	parts := strings.Split(prop, ",")
	ret := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f < 0 || f > 100 {
			return parsePercentileValues(defaultValue, defaultValue)
		}
		ret = append(ret, f)
	}
	return ret
}

func NewHistogramConfigFromProperties(p Properties) (HistogramConfig, error) {
	every, err := p.GetInt64(PropertySampleEvery, PropertySampleEveryDefault)
	if err != nil {
		return HistogramConfig{}, err
	}
	max, err := p.GetInt64(PropertyHdrHistogramMax, PropertyHdrHistogramMaxDefault)
	if err != nil {
		return HistogramConfig{}, err
	}
	sig, err := p.GetInt64(PropertyHdrHistogramSig, PropertyHdrHistogramSigDefault)
	if err != nil {
		return HistogramConfig{}, err
	}
	if every < 0 || max < 1 || sig < 1 || sig > 5 {
		return HistogramConfig{}, fmt.Errorf("%w: invalid latency sampling settings", ErrInvalidWorkload)
	}
	prop := p.GetDefault(PropertyPercentiles, PropertyPercentilesDefault)
	return HistogramConfig{
		SampleEvery: int(every),
		Max:         max,
		Sig:         int(sig),
		Percentiles: parsePercentileValues(prop, PropertyPercentilesDefault),
	}, nil
}

// latencyRecorder keeps a HdrHistogram of the latencies one worker sampled.
// It is confined to its worker until the run finished.
type latencyRecorder struct {
	histogram *hdrhistogram.Histogram
}

func newLatencyRecorder(c HistogramConfig) *latencyRecorder {
	return &latencyRecorder{
		histogram: hdrhistogram.New(1, c.Max, c.Sig),
	}
}

// Measure records one latency in nanoseconds. Values beyond the histogram
// range are clamped to it.
func (self *latencyRecorder) Measure(latency int64) {
	if latency < 1 {
		latency = 1
	}
	if max := self.histogram.HighestTrackableValue(); latency > max {
		latency = max
	}
	self.histogram.RecordValue(latency)
}

// mergeLatencies folds the recorders of all workers into one summary.
func mergeLatencies(recorders []*latencyRecorder, c HistogramConfig) *LatencySummary {
	merged := hdrhistogram.New(1, c.Max, c.Sig)
	for _, r := range recorders {
		if r != nil {
			merged.Merge(r.histogram)
		}
	}
	if merged.TotalCount() == 0 {
		return nil
	}
	summary := &LatencySummary{
		Count: merged.TotalCount(),
		Min:   time.Duration(merged.Min()),
		Max:   time.Duration(merged.Max()),
		Mean:  time.Duration(math.Round(merged.Mean())),
	}
	for _, p := range c.Percentiles {
		summary.Percentiles = append(summary.Percentiles, PercentileValue{
			Percentile: p,
			Value:      time.Duration(merged.ValueAtQuantile(p)),
		})
	}
	return summary
}
