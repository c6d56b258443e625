package mapbench

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hhkbp2/testify/require"
)

// testCollection is a mutex guarded map counting its lifecycle events.
type testCollection struct {
	mu          sync.Mutex
	m           map[uint64]uint32
	pins        atomic.Int64
	releases    atomic.Int64
	closes      atomic.Int64
	reclaims    atomic.Int64
	sizeAtClose int
	panicOn     OperationKind
	panicking   bool
	reportsHit  bool
}

func newTestCollection(capacity int) *testCollection {
	return &testCollection{
		m: make(map[uint64]uint32, capacity),
	}
}

func (self *testCollection) newFunc() NewCollectionFunc {
	return func(capacity int) (Collection, error) {
		return self, nil
	}
}

func (self *testCollection) Pin() Handle {
	self.pins.Add(1)
	return &testHandle{self}
}

func (self *testCollection) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.closes.Add(1)
	self.sizeAtClose = len(self.m)
	return nil
}

func (self *testCollection) Reclaim() {
	self.reclaims.Add(1)
}

func (self *testCollection) InsertReportsPresent() bool {
	return self.reportsHit
}

func (self *testCollection) check(kind OperationKind) {
	if self.panicking && self.panicOn == kind {
		panic("injected failure")
	}
}

type testHandle struct {
	c *testCollection
}

func (self *testHandle) Release() {
	self.c.releases.Add(1)
}

func (self *testHandle) Get(key uint64) bool {
	self.c.check(OpRead)
	self.c.mu.Lock()
	defer self.c.mu.Unlock()
	_, ok := self.c.m[key]
	return ok
}

func (self *testHandle) Insert(key uint64) bool {
	self.c.check(OpInsert)
	self.c.mu.Lock()
	defer self.c.mu.Unlock()
	_, ok := self.c.m[key]
	if !ok {
		self.c.m[key] = 0
	}
	if self.c.reportsHit {
		return ok
	}
	return !ok
}

func (self *testHandle) Remove(key uint64) bool {
	self.c.check(OpRemove)
	self.c.mu.Lock()
	defer self.c.mu.Unlock()
	_, ok := self.c.m[key]
	delete(self.c.m, key)
	return ok
}

func (self *testHandle) Update(key uint64) bool {
	self.c.check(OpUpdate)
	self.c.mu.Lock()
	defer self.c.mu.Unlock()
	v, ok := self.c.m[key]
	if ok {
		self.c.m[key] = v + 1
	}
	return ok
}

func noReclaim() RunOption {
	return WithReclamation(ReclamationCycle{})
}

func TestRunReadOnly(t *testing.T) {
	w := NewWorkload(4, Mix{Read: 1}).
		SetInitialCapacityLog2(10).
		SetPrefillFraction(1)
	c := newTestCollection(w.Capacity())
	m, err := Run(w, c.newFunc(), noReclaim())
	require.Nil(t, err)
	require.Equal(t, uint64(4*1024), m.TotalOps)
	require.Equal(t, 4, m.Threads)
	require.Equal(t, uint64(4*1024), m.Hits)
	require.Equal(t, uint64(0), m.Misses)
	require.True(t, m.Spent > 0)
	require.True(t, m.Throughput > 0)
	require.Equal(t, m.Spent/1024, m.Latency)
	require.Nil(t, m.Sampled)
	require.Equal(t, 1024, c.sizeAtClose)
}

func TestRunLifecycle(t *testing.T) {
	w := NewWorkload(3, ReadHeavyMix()).SetInitialCapacityLog2(8)
	c := newTestCollection(w.Capacity())
	_, err := Run(w, c.newFunc(), noReclaim())
	require.Nil(t, err)
	// one handle for prefill, one per worker
	require.Equal(t, int64(4), c.pins.Load())
	require.Equal(t, int64(4), c.releases.Load())
	require.Equal(t, int64(1), c.closes.Load())
	require.Equal(t, int64(1), c.reclaims.Load())
}

func TestRunInsertOnlyBoundedByCapacity(t *testing.T) {
	w := NewWorkload(4, Mix{Insert: 1}).
		SetInitialCapacityLog2(10).
		SetOperations(2)
	c := newTestCollection(w.Capacity())
	m, err := Run(w, c.newFunc(), noReclaim())
	require.Nil(t, err)
	require.Equal(t, uint64(4*2048), m.TotalOps)
	require.True(t, c.sizeAtClose <= w.Capacity())
	require.Equal(t, uint64(c.sizeAtClose), m.Hits)
	require.Equal(t, m.TotalOps, m.Hits+m.Misses)
}

func TestRunUpsertAlwaysHits(t *testing.T) {
	w := NewWorkload(1, Mix{Upsert: 1}).SetInitialCapacityLog2(8)
	c := newTestCollection(w.Capacity())
	m, err := Run(w, c.newFunc(), noReclaim())
	require.Nil(t, err)
	require.Equal(t, m.TotalOps, m.Hits)
}

func TestRunInsertReporter(t *testing.T) {
	w := NewWorkload(1, Mix{Insert: 1}).SetInitialCapacityLog2(8)
	plain := newTestCollection(w.Capacity())
	expected, err := Run(w, plain.newFunc(), noReclaim())
	require.Nil(t, err)

	reporting := newTestCollection(w.Capacity())
	reporting.reportsHit = true
	m, err := Run(w, reporting.newFunc(), noReclaim())
	require.Nil(t, err)
	require.Equal(t, expected.Hits, m.Hits)
	require.Equal(t, uint64(reporting.sizeAtClose), m.Hits)
}

func TestRunWorkerPanic(t *testing.T) {
	w := NewWorkload(4, Mix{Read: 1}).SetInitialCapacityLog2(8)
	c := newTestCollection(w.Capacity())
	c.panicking = true
	c.panicOn = OpRead
	m, err := Run(w, c.newFunc(), noReclaim())
	require.Nil(t, m)
	require.True(t, errors.Is(err, ErrWorkerFailed))
	var werr *WorkerError
	require.True(t, errors.As(err, &werr))
	require.True(t, werr.Worker >= 0 && werr.Worker < 4)
	require.Equal(t, "measured phase", werr.Phase)
	require.Equal(t, "injected failure", werr.Value)
	require.Equal(t, c.pins.Load(), c.releases.Load())
	require.Equal(t, int64(1), c.closes.Load())
}

func TestRunPrefillPanic(t *testing.T) {
	w := NewWorkload(2, Mix{Read: 1}).
		SetInitialCapacityLog2(8).
		SetPrefillFraction(0.5)
	c := newTestCollection(w.Capacity())
	c.panicking = true
	c.panicOn = OpInsert
	_, err := Run(w, c.newFunc(), noReclaim())
	require.True(t, errors.Is(err, ErrWorkerFailed))
	var werr *WorkerError
	require.True(t, errors.As(err, &werr))
	require.Equal(t, -1, werr.Worker)
	require.Equal(t, int64(1), c.closes.Load())
}

func TestRunConstructionFailure(t *testing.T) {
	w := NewWorkload(1, ReadHeavyMix()).SetInitialCapacityLog2(4)
	failing := func(capacity int) (Collection, error) {
		return nil, errors.New("no memory")
	}
	_, err := Run(w, failing, noReclaim())
	require.True(t, errors.Is(err, ErrBackendConstruction))

	panicking := func(capacity int) (Collection, error) {
		panic("boom")
	}
	_, err = Run(w, panicking, noReclaim())
	require.True(t, errors.Is(err, ErrBackendConstruction))

	nothing := func(capacity int) (Collection, error) {
		return nil, nil
	}
	_, err = Run(w, nothing, noReclaim())
	require.True(t, errors.Is(err, ErrBackendConstruction))
}

func TestRunInvalidWorkload(t *testing.T) {
	c := newTestCollection(16)
	_, err := Run(NewWorkload(0, ReadHeavyMix()), c.newFunc(), noReclaim())
	require.True(t, errors.Is(err, ErrInvalidThreadCount))
	_, err = Run(NewWorkload(1, Mix{}), c.newFunc(), noReclaim())
	require.True(t, errors.Is(err, ErrInvalidMix))
	require.Equal(t, int64(0), c.pins.Load())
}

func TestRunZeroOperations(t *testing.T) {
	w := NewWorkload(2, ReadHeavyMix()).
		SetInitialCapacityLog2(4).
		SetOperations(0)
	c := newTestCollection(w.Capacity())
	m, err := Run(w, c.newFunc(), noReclaim())
	require.Nil(t, err)
	require.Equal(t, uint64(0), m.TotalOps)
	require.Equal(t, 0.0, m.Throughput)
	require.Equal(t, int64(0), int64(m.Latency))
}

func TestRunLatencySampling(t *testing.T) {
	w := NewWorkload(2, ReadHeavyMix()).SetInitialCapacityLog2(8)
	c := newTestCollection(w.Capacity())
	histogram := DefaultHistogramConfig
	histogram.SampleEvery = 4
	m, err := Run(w, c.newFunc(), noReclaim(), WithLatencySampling(histogram))
	require.Nil(t, err)
	require.NotNil(t, m.Sampled)
	require.Equal(t, int64(2*256/4), m.Sampled.Count)
	require.Equal(t, len(histogram.Percentiles), len(m.Sampled.Percentiles))
	require.True(t, m.Sampled.Min <= m.Sampled.Max)
}

func TestExecuteWithBasicCollection(t *testing.T) {
	w := NewWorkload(1, UniformMix()).SetInitialCapacityLog2(8).SetPrefillFraction(0.5)
	newCollection := func(capacity int) (Collection, error) {
		return NewBasicCollection(NewProperties(), capacity)
	}
	m, err := Execute(w, newCollection, 2, noReclaim(), WithCPUPinning(true))
	require.Nil(t, err)
	require.Equal(t, 2, m.Threads)
	require.Equal(t, uint64(512), m.TotalOps)
	require.Equal(t, m.TotalOps, m.Hits+m.Misses)
}

func TestApply(t *testing.T) {
	c := newTestCollection(4)
	h := c.Pin()
	require.False(t, apply(h, Operation{Key: 1, Kind: OpRead}))
	require.False(t, apply(h, Operation{Key: 1, Kind: OpUpdate}))
	require.True(t, apply(h, Operation{Key: 1, Kind: OpUpsert}))
	require.True(t, apply(h, Operation{Key: 1, Kind: OpUpsert}))
	require.Equal(t, uint32(1), c.m[1])
	require.False(t, apply(h, Operation{Key: 1, Kind: OpInsert}))
	require.True(t, apply(h, Operation{Key: 1, Kind: OpRemove}))
	require.Panics(t, func() {
		apply(h, Operation{Key: 1, Kind: OperationKind(9)})
	})
}

func TestLeaseTableHandles(t *testing.T) {
	c := newTestCollection(4)
	tb := newLeaseTable(c)
	l1 := tb.pin()
	l2 := tb.pin()
	require.Equal(t, int64(2), tb.outstanding())
	err := tb.close()
	require.True(t, errors.Is(err, ErrHandlesOutstanding))
	l1.release()
	l1.release()
	require.Equal(t, int64(1), tb.outstanding())
	l2.release()
	require.Nil(t, tb.close())
	require.NotNil(t, tb.close())
	require.Panics(t, func() {
		tb.pin()
	})
	require.Equal(t, int64(1), c.closes.Load())
	require.Equal(t, int64(2), c.releases.Load())
}

func TestLeaseTableFlipsReportedInsert(t *testing.T) {
	c := newTestCollection(4)
	c.reportsHit = true
	tb := newLeaseTable(c)
	l := tb.pin()
	require.True(t, l.Insert(5))
	require.False(t, l.Insert(5))
	l.release()
	require.Equal(t, int64(1), c.releases.Load())
	require.Nil(t, tb.close())
}
