package mapbench

import (
	"fmt"
	"math/rand/v2"

	g "github.com/hhkbp2/mapbench/generator"
)

// Operation is one pre-generated map operation.
type Operation struct {
	Key  uint64
	Kind OperationKind
}

// OperationLog is the ordered operations one worker replays.
type OperationLog []Operation

// Counts returns the number of operations of each kind.
func (self OperationLog) Counts() [numOperationKinds]int {
	var counts [numOperationKinds]int
	for _, op := range self {
		counts[op.Kind]++
	}
	return counts
}

// LogGenerator draws operations for one thread of a workload.
// It must stay confined to one goroutine.
type LogGenerator struct {
	workload         *Workload
	operationChooser *g.DiscreteGenerator
	keyChooser       g.IntegerGenerator
	keySpace         int64
}

// NewLogGenerator creates the generator of thread's operation log. Generators
// of distinct threads use independent random streams of the workload seed.
func NewLogGenerator(w *Workload, thread int) (*LogGenerator, error) {
	if err := w.Mix.Validate(); err != nil {
		return nil, err
	}
	r := g.NewRand(w.Seed, uint64(thread)+1)
	operationChooser := g.NewDiscreteGenerator(r)
	for i, weight := range w.Mix.Weights() {
		operationChooser.AddValue(float64(weight), OperationKind(i).String())
	}
	keySpace := int64(w.Capacity())
	keyChooser, err := newKeyChooser(w, r, thread, keySpace)
	if err != nil {
		return nil, err
	}
	return &LogGenerator{
		workload:         w,
		operationChooser: operationChooser,
		keyChooser:       keyChooser,
		keySpace:         keySpace,
	}, nil
}

func newKeyChooser(w *Workload, r *rand.Rand, thread int, keySpace int64) (g.IntegerGenerator, error) {
	switch w.Distribution {
	case DistributionSequential:
		// threads walk the key space from evenly spaced offsets
		threads := int64(max(w.Threads, 1))
		return g.NewCounterGenerator(int64(thread) % threads * keySpace / threads), nil
	case DistributionUniform:
		return g.NewUniformIntegerGenerator(r, 0, keySpace-1), nil
	case DistributionZipfian:
		return g.NewScrambledZipfianGeneratorByItems(r, keySpace), nil
	case DistributionHotspot:
		return g.NewHotspotIntegerGenerator(r, 0, keySpace-1,
			w.HotspotDataFraction, w.HotspotOpnFraction), nil
	case DistributionExponential:
		return g.NewExponentialGenerator(r, w.ExponentialPercentile,
			float64(keySpace)*w.ExponentialFraction), nil
	default:
		return nil, fmt.Errorf("%w: unknown request distribution %s", ErrInvalidWorkload, w.Distribution)
	}
}

// Next draws one operation.
func (self *LogGenerator) Next() Operation {
	kind := OperationKind(self.operationChooser.NextIndex())
	index := self.keyChooser.NextInt() % self.keySpace
	return Operation{
		Key:  self.workload.Key(uint64(index)),
		Kind: kind,
	}
}

// Generate draws n operations.
func (self *LogGenerator) Generate(n int) OperationLog {
	log := make(OperationLog, n)
	for i := range log {
		log[i] = self.Next()
	}
	return log
}

// GenerateLog returns the complete operation log of thread.
func GenerateLog(w *Workload, thread int) (OperationLog, error) {
	gen, err := NewLogGenerator(w, thread)
	if err != nil {
		return nil, err
	}
	return gen.Generate(w.OperationsPerThread()), nil
}

// Key maps a key index in [0, Capacity()) to the key operated on.
func (self *Workload) Key(index uint64) uint64 {
	if self.InsertOrder == InsertOrderOrdered {
		return index
	}
	return g.ScrambleKey(index)
}

// PrefillKeys returns the distinct keys inserted before the measured phase.
func PrefillKeys(w *Workload) []uint64 {
	n := w.PrefillCount()
	keys := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, w.Key(uint64(i)))
	}
	return keys
}
