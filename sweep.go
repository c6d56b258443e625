package mapbench

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// CaseError identifies the case a failure happened in.
type CaseError struct {
	Backend string
	Threads int
	Err     error
}

func (self *CaseError) Error() string {
	return fmt.Sprintf("%s with %d threads: %s", self.Backend, self.Threads, self.Err)
}

func (self *CaseError) Unwrap() error {
	return self.Err
}

// CaseHandler receives the result of every successful case.
type CaseHandler func(r *Record, m *Measurement) error

// Sweep runs one workload against a list of backends, once for every
// thread count.
type Sweep struct {
	RunID      string
	Workload   *Workload
	Backends   []string
	Skip       []string
	Threads    []int
	Properties Properties
	Reclaim    ReclamationCycle
	Histogram  HistogramConfig
	PinCPUs    bool
	Logger     hclog.Logger
	Metrics    *Metrics
}

// NewSweepFromProperties builds a sweep out of the workload, backend, thread,
// reclamation and sampling properties of p.
func NewSweepFromProperties(p Properties, logger hclog.Logger) (*Sweep, error) {
	w, err := NewWorkloadFromProperties(p, 1)
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	threads, err := ThreadCountsFromProperties(p)
	if err != nil {
		return nil, err
	}
	reclaim, err := NewReclamationCycleFromProperties(p)
	if err != nil {
		return nil, err
	}
	histogram, err := NewHistogramConfigFromProperties(p)
	if err != nil {
		return nil, err
	}
	pinCPUs, err := p.GetBool(PropertyPinCPUs, PropertyPinCPUsDefault)
	if err != nil {
		return nil, err
	}
	backends := p.GetList(PropertyBackends)
	for _, name := range backends {
		if _, ok := Backends[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
		}
	}
	return &Sweep{
		RunID:      uuid.NewString(),
		Workload:   w,
		Backends:   backends,
		Skip:       p.GetList(PropertySkip),
		Threads:    threads,
		Properties: p,
		Reclaim:    reclaim,
		Histogram:  histogram,
		PinCPUs:    pinCPUs,
		Logger:     logger,
	}, nil
}

// BackendNames returns the backends this sweep visits in order: the
// configured ones, or every registered in-process backend.
func (self *Sweep) BackendNames() []string {
	if len(self.Backends) > 0 {
		return self.Backends
	}
	names := make([]string, 0, len(Backends))
	for _, name := range BackendNames() {
		if !Backends[name].Remote {
			names = append(names, name)
		}
	}
	return names
}

func (self *Sweep) skipped(name string) bool {
	for _, s := range self.Skip {
		if s == name {
			return true
		}
	}
	return false
}

// Run executes every case and hands results to handle in order. A case
// whose backend could not be constructed is reported and the sweep moves on
// to the next case. A worker failure also abandons the remaining thread
// counts of that backend. An error of handle stops the sweep. The returned
// error aggregates all failures.
func (self *Sweep) Run(handle CaseHandler) error {
	logger := loggerOrNull(self.Logger)
	if len(self.RunID) > 0 {
		logger = logger.With("run", self.RunID)
	}
	opts := []RunOption{
		WithLogger(logger),
		WithReclamation(self.Reclaim),
		WithLatencySampling(self.Histogram),
		WithCPUPinning(self.PinCPUs),
	}
	var result *multierror.Error
	for _, name := range self.BackendNames() {
		if self.skipped(name) {
			logger.Info("backend skipped", "backend", name)
			continue
		}
		newCollection, err := NewBackend(name, self.Properties, logger)
		if err != nil {
			result = multierror.Append(result, &CaseError{Backend: name, Err: err})
			continue
		}
		logger.Info("running backend", "backend", name, "workload", self.Workload.String())
		for _, threads := range self.Threads {
			w := self.Workload.WithThreads(threads)
			m, err := Run(w, newCollection, opts...)
			if err != nil {
				logger.Error("case failed", "backend", name, "threads", threads, "error", err)
				self.Metrics.Failure(name, err)
				result = multierror.Append(result, &CaseError{Backend: name, Threads: threads, Err: err})
				if errors.Is(err, ErrWorkerFailed) {
					break
				}
				continue
			}
			r := NewRecord(name, m)
			r.RunID = self.RunID
			logger.Debug("case done", "backend", name, "threads", threads,
				"throughput", m.Throughput, "latency", m.Latency)
			self.Metrics.Observe(r)
			if err := handle(r, m); err != nil {
				return multierror.Append(result, err).ErrorOrNil()
			}
		}
	}
	return result.ErrorOrNil()
}
