package mapbench

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// WorkerError reports a panic recovered from a worker or from prefill.
type WorkerError struct {
	// Worker is the thread index, -1 for prefill.
	Worker int
	Phase  string
	Value  interface{}
	Stack  []byte
}

func (self *WorkerError) Error() string {
	return fmt.Sprintf("%s: worker %d panicked during %s: %v", ErrWorkerFailed, self.Worker, self.Phase, self.Value)
}

func (self *WorkerError) Unwrap() error {
	return ErrWorkerFailed
}

func recoverTo(err *error, worker int, phase string) {
	if p := recover(); p != nil {
		*err = &WorkerError{
			Worker: worker,
			Phase:  phase,
			Value:  p,
			Stack:  debug.Stack(),
		}
	}
}

type RunOption func(*runConfig)

type runConfig struct {
	logger    hclog.Logger
	histogram HistogramConfig
	pinCPUs   bool
	reclaim   ReclamationCycle
}

func WithLogger(logger hclog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithLatencySampling times every c.SampleEvery-th operation of each worker.
func WithLatencySampling(c HistogramConfig) RunOption {
	return func(rc *runConfig) {
		rc.histogram = c
	}
}

// WithCPUPinning pins worker i to cpu i mod NumCPU where supported.
func WithCPUPinning(pin bool) RunOption {
	return func(c *runConfig) {
		c.pinCPUs = pin
	}
}

// WithReclamation sets the reclamation cycle run after the collection closed.
func WithReclamation(cycle ReclamationCycle) RunOption {
	return func(c *runConfig) {
		c.reclaim = cycle
	}
}

type workerResult struct {
	start    time.Time
	end      time.Time
	hits     uint64
	misses   uint64
	recorder *latencyRecorder
}

// Execute runs w on threads threads against collections made by backend.
func Execute(w *Workload, backend NewCollectionFunc, threads int, opts ...RunOption) (*Measurement, error) {
	return Run(w.WithThreads(threads), backend, opts...)
}

// Run measures one workload against one backend.
//
// The collection is created with the workload capacity and prefilled on the
// calling goroutine. Then w.Threads workers, each locked to its own OS
// thread, generate their operation logs, pin a handle and wait on a common
// start barrier. The measured phase spans from the earliest worker start to
// the latest worker end. A panic in any worker fails the run with an error
// wrapping ErrWorkerFailed and no measurement.
func Run(w *Workload, newCollection NewCollectionFunc, opts ...RunOption) (*Measurement, error) {
	c := &runConfig{
		reclaim: DefaultReclamationCycle,
	}
	for _, opt := range opts {
		opt(c)
	}
	logger := loggerOrNull(c.logger)

	if err := w.Validate(); err != nil {
		return nil, err
	}
	collection, err := construct(newCollection, w.Capacity())
	if err != nil {
		return nil, err
	}
	t := newLeaseTable(collection)
	defer c.reclaim.Run()

	if err := prefill(t, w); err != nil {
		logger.Error("prefill failed", "error", err)
		closeTable(t, logger)
		return nil, err
	}
	logger.Debug("prefilled", "keys", w.PrefillCount())

	results := make([]workerResult, w.Threads)
	start := newStartBarrier(w.Threads)
	var group errgroup.Group
	for i := 0; i < w.Threads; i++ {
		group.Go(func() error {
			return work(i, w, t, start, c, &results[i], logger)
		})
	}
	err = group.Wait()
	if cerr := closeTable(t, logger); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		var werr *WorkerError
		if errors.As(err, &werr) {
			logger.Error("worker failed", "worker", werr.Worker, "phase", werr.Phase,
				"panic", fmt.Sprint(werr.Value), "stack", string(werr.Stack))
		}
		return nil, err
	}

	var first, last time.Time
	var hits, misses uint64
	recorders := make([]*latencyRecorder, 0, len(results))
	for i, r := range results {
		if i == 0 || r.start.Before(first) {
			first = r.start
		}
		if i == 0 || r.end.After(last) {
			last = r.end
		}
		hits += r.hits
		misses += r.misses
		recorders = append(recorders, r.recorder)
	}
	m := NewMeasurement(w.Threads, w.OperationsPerThread(), last.Sub(first))
	m.Hits = hits
	m.Misses = misses
	if c.histogram.SampleEvery > 0 {
		m.Sampled = mergeLatencies(recorders, c.histogram)
	}
	return m, nil
}

func construct(newCollection NewCollectionFunc, capacity int) (collection Collection, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", ErrBackendConstruction, p)
		}
	}()
	collection, err = newCollection(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendConstruction, err)
	}
	if collection == nil {
		return nil, fmt.Errorf("%w: no collection returned", ErrBackendConstruction)
	}
	return collection, nil
}

func closeTable(t *leaseTable, logger hclog.Logger) error {
	if r, ok := t.collection.(Reclaimer); ok {
		r.Reclaim()
	}
	err := t.close()
	if err != nil {
		logger.Error("fail to close collection", "error", err)
	}
	return err
}

func prefill(t *leaseTable, w *Workload) (err error) {
	defer recoverTo(&err, -1, "prefill")
	l := t.pin()
	defer l.release()
	for _, key := range PrefillKeys(w) {
		l.Insert(key)
	}
	return nil
}

func work(
	id int, w *Workload, t *leaseTable, start *startBarrier,
	c *runConfig, result *workerResult, logger hclog.Logger) error {

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var l *lease
	var log OperationLog
	setupErr := func() (err error) {
		defer recoverTo(&err, id, "setup")
		if c.pinCPUs {
			if perr := pinToCPU(id); perr != nil {
				logger.Warn("fail to pin worker", "worker", id, "error", perr)
			}
		}
		log, err = GenerateLog(w, id)
		if err != nil {
			return err
		}
		if c.histogram.SampleEvery > 0 {
			result.recorder = newLatencyRecorder(c.histogram)
		}
		l = t.pin()
		return nil
	}()
	if l != nil {
		defer l.release()
	}
	// every worker must arrive, or the others never start
	start.Wait()
	if setupErr != nil {
		return setupErr
	}
	if result.recorder != nil {
		return replaySampled(id, l.Handle, log, result, c.histogram.SampleEvery)
	}
	return replay(id, l.Handle, log, result)
}

func replay(id int, h Handle, log OperationLog, result *workerResult) (err error) {
	defer recoverTo(&err, id, "measured phase")
	var hits, misses uint64
	result.start = time.Now()
	for _, op := range log {
		if apply(h, op) {
			hits++
		} else {
			misses++
		}
	}
	result.end = time.Now()
	result.hits = hits
	result.misses = misses
	return nil
}

func replaySampled(id int, h Handle, log OperationLog, result *workerResult, every int) (err error) {
	defer recoverTo(&err, id, "measured phase")
	var hits, misses uint64
	recorder := result.recorder
	result.start = time.Now()
	for i, op := range log {
		var ok bool
		if i%every == 0 {
			begin := time.Now()
			ok = apply(h, op)
			recorder.Measure(int64(time.Since(begin)))
		} else {
			ok = apply(h, op)
		}
		if ok {
			hits++
		} else {
			misses++
		}
	}
	result.end = time.Now()
	result.hits = hits
	result.misses = misses
	return nil
}

func apply(h Handle, op Operation) bool {
	switch op.Kind {
	case OpRead:
		return h.Get(op.Key)
	case OpInsert:
		return h.Insert(op.Key)
	case OpRemove:
		return h.Remove(op.Key)
	case OpUpdate:
		return h.Update(op.Key)
	case OpUpsert:
		if h.Update(op.Key) {
			return true
		}
		return h.Insert(op.Key)
	default:
		panic(fmt.Sprintf("unknown operation kind %d", op.Kind))
	}
}
