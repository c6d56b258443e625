package mapbench

import (
	"fmt"
	"math"
	"sort"
)

const (
	// Largest supported InitialCapacityLog2.
	MaxInitialCapacityLog2 = 40

	DistributionUniform     = "uniform"
	DistributionZipfian     = "zipfian"
	DistributionHotspot     = "hotspot"
	DistributionExponential = "exponential"
	DistributionSequential  = "sequential"

	InsertOrderOrdered = "ordered"
	InsertOrderHashed  = "hashed"
)

// MakeWorkloadFunc creates a named workload preset for a thread count.
type MakeWorkloadFunc func(threads int) *Workload

var (
	Workloads map[string]MakeWorkloadFunc
)

func init() {
	Workloads = make(map[string]MakeWorkloadFunc)
}

// WorkloadNames returns the names of the registered presets in order.
func WorkloadNames() []string {
	names := make([]string, 0, len(Workloads))
	for name := range Workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewWorkloadByName creates the registered preset name for threads.
func NewWorkloadByName(name string, threads int) (*Workload, error) {
	f, ok := Workloads[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkload, name)
	}
	return f(threads), nil
}

// Workload describes one benchmark case: how many threads run which mix of
// operations against a map of which initial size.
//
// Each thread performs floor(Operations * 2^InitialCapacityLog2) operations
// on keys drawn from a key space of 2^InitialCapacityLog2 keys. Before the
// measured phase floor(PrefillFraction * 2^InitialCapacityLog2) distinct keys
// are inserted.
type Workload struct {
	Threads             int
	Mix                 Mix
	InitialCapacityLog2 uint8
	PrefillFraction     float64
	Operations          float64
	Seed                uint64
	// The distribution of key indices: uniform, zipfian, hotspot
	// or exponential.
	Distribution string
	// "ordered" uses the key index as key, "hashed" scrambles it.
	InsertOrder           string
	HotspotDataFraction   float64
	HotspotOpnFraction    float64
	ExponentialPercentile float64
	ExponentialFraction   float64
}

func NewWorkload(threads int, mix Mix) *Workload {
	return &Workload{
		Threads:               threads,
		Mix:                   mix,
		InitialCapacityLog2:   25,
		PrefillFraction:       0.0,
		Operations:            1.0,
		Seed:                  2718281828,
		Distribution:          DistributionUniform,
		InsertOrder:           InsertOrderHashed,
		HotspotDataFraction:   0.2,
		HotspotOpnFraction:    0.8,
		ExponentialPercentile: 95,
		ExponentialFraction:   0.8571428571,
	}
}

func (self *Workload) SetInitialCapacityLog2(n uint8) *Workload {
	self.InitialCapacityLog2 = n
	return self
}

func (self *Workload) SetPrefillFraction(fraction float64) *Workload {
	self.PrefillFraction = fraction
	return self
}

func (self *Workload) SetOperations(multiplier float64) *Workload {
	self.Operations = multiplier
	return self
}

func (self *Workload) SetSeed(seed uint64) *Workload {
	self.Seed = seed
	return self
}

func (self *Workload) SetDistribution(distribution string) *Workload {
	self.Distribution = distribution
	return self
}

func (self *Workload) SetInsertOrder(order string) *Workload {
	self.InsertOrder = order
	return self
}

// WithThreads returns a copy of this workload running on threads threads.
func (self *Workload) WithThreads(threads int) *Workload {
	w := *self
	w.Threads = threads
	return &w
}

// Capacity returns the initial capacity, which is also the key space size.
func (self *Workload) Capacity() int {
	return 1 << self.InitialCapacityLog2
}

// OperationsPerThread returns the length of every thread's operation log.
func (self *Workload) OperationsPerThread() int {
	return int(math.Floor(self.Operations * float64(self.Capacity())))
}

// TotalOperations returns the number of operations of a run.
func (self *Workload) TotalOperations() uint64 {
	return uint64(self.Threads) * uint64(self.OperationsPerThread())
}

// PrefillCount returns the number of keys inserted before the measured phase.
func (self *Workload) PrefillCount() int {
	return int(math.Floor(self.PrefillFraction * float64(self.Capacity())))
}

func (self *Workload) Validate() error {
	if self.Threads < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidThreadCount, self.Threads)
	}
	if err := self.Mix.Validate(); err != nil {
		return err
	}
	if self.InitialCapacityLog2 > MaxInitialCapacityLog2 {
		return fmt.Errorf("%w: initial capacity log2 %d exceeds %d",
			ErrInvalidWorkload, self.InitialCapacityLog2, MaxInitialCapacityLog2)
	}
	if math.IsNaN(self.PrefillFraction) || self.PrefillFraction < 0 || self.PrefillFraction > 1 {
		return fmt.Errorf("%w: prefill fraction %g out of [0, 1]", ErrInvalidWorkload, self.PrefillFraction)
	}
	if math.IsNaN(self.Operations) || math.IsInf(self.Operations, 0) || self.Operations < 0 {
		return fmt.Errorf("%w: operations multiplier %g", ErrInvalidWorkload, self.Operations)
	}
	switch self.Distribution {
	case DistributionUniform, DistributionZipfian, DistributionSequential:
	case DistributionHotspot:
		if !inUnitInterval(self.HotspotDataFraction) || !inUnitInterval(self.HotspotOpnFraction) {
			return fmt.Errorf("%w: hotspot fractions %g/%g out of [0, 1]",
				ErrInvalidWorkload, self.HotspotDataFraction, self.HotspotOpnFraction)
		}
	case DistributionExponential:
		p := self.ExponentialPercentile
		if math.IsNaN(p) || p <= 0 || p >= 100 {
			return fmt.Errorf("%w: exponential percentile %g out of (0, 100)", ErrInvalidWorkload, p)
		}
		f := self.ExponentialFraction
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return fmt.Errorf("%w: exponential fraction %g must be positive", ErrInvalidWorkload, f)
		}
	default:
		return fmt.Errorf("%w: unknown request distribution %s", ErrInvalidWorkload, self.Distribution)
	}
	switch self.InsertOrder {
	case InsertOrderOrdered, InsertOrderHashed:
	default:
		return fmt.Errorf("%w: unknown insert order %s", ErrInvalidWorkload, self.InsertOrder)
	}
	return nil
}

func inUnitInterval(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 1
}

func (self *Workload) String() string {
	return fmt.Sprintf("threads=%d mix=[%s] capacity=2^%d prefill=%g operations=%g distribution=%s",
		self.Threads, self.Mix, self.InitialCapacityLog2, self.PrefillFraction,
		self.Operations, self.Distribution)
}

// NewWorkloadFromProperties creates the preset named by `PropertyWorkload`
// and applies every workload property present in p on top of it.
func NewWorkloadFromProperties(p Properties, threads int) (*Workload, error) {
	w, err := NewWorkloadByName(p.GetDefault(PropertyWorkload, PropertyWorkloadDefault), threads)
	if err != nil {
		return nil, err
	}
	if err := w.ApplyProperties(p); err != nil {
		return nil, err
	}
	return w, nil
}

// ApplyProperties overrides the fields of this workload set in p.
func (self *Workload) ApplyProperties(p Properties) error {
	if _, ok := p[PropertyInitialCapacityLog2]; ok {
		v, err := p.GetInt64(PropertyInitialCapacityLog2, "")
		if err != nil {
			return err
		}
		if v < 0 || v > MaxInitialCapacityLog2 {
			return fmt.Errorf("%w: initial capacity log2 %d", ErrInvalidWorkload, v)
		}
		self.InitialCapacityLog2 = uint8(v)
	}
	floats := []struct {
		key   string
		field *float64
	}{
		{PropertyPrefillFraction, &self.PrefillFraction},
		{PropertyOperations, &self.Operations},
		{HotspotDataFraction, &self.HotspotDataFraction},
		{HotspotOpnFraction, &self.HotspotOpnFraction},
		{PropertyExponentialPercentile, &self.ExponentialPercentile},
		{PropertyExponentialFraction, &self.ExponentialFraction},
	}
	for _, f := range floats {
		if _, ok := p[f.key]; !ok {
			continue
		}
		v, err := p.GetFloat64(f.key, "")
		if err != nil {
			return err
		}
		*f.field = v
	}
	weights := []struct {
		key   string
		field *uint32
	}{
		{PropertyReadWeight, &self.Mix.Read},
		{PropertyInsertWeight, &self.Mix.Insert},
		{PropertyRemoveWeight, &self.Mix.Remove},
		{PropertyUpdateWeight, &self.Mix.Update},
		{PropertyUpsertWeight, &self.Mix.Upsert},
	}
	for _, f := range weights {
		if _, ok := p[f.key]; !ok {
			continue
		}
		v, err := p.GetUint64(f.key, "")
		if err != nil {
			return err
		}
		if v > math.MaxUint32 {
			return fmt.Errorf("%w: weight %s=%d", ErrInvalidMix, f.key, v)
		}
		*f.field = uint32(v)
	}
	if _, ok := p[PropertySeed]; ok {
		v, err := p.GetUint64(PropertySeed, "")
		if err != nil {
			return err
		}
		self.Seed = v
	}
	if v, ok := p[PropertyRequestDistribution]; ok {
		self.Distribution = v
	}
	if v, ok := p[PropertyInsertOrder]; ok {
		self.InsertOrder = v
	}
	return nil
}
