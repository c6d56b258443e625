package mapbench

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
	g "github.com/hhkbp2/mapbench/generator"
)

var (
	ErrInvalidMix          = errors.New("invalid operation mix")
	ErrInvalidWorkload     = errors.New("invalid workload")
	ErrInvalidThreadCount  = errors.New("invalid thread count")
	ErrBackendConstruction = errors.New("backend construction failed")
	ErrBackendUnavailable  = errors.New("dependant service for the current backend is not available")
	ErrUnknownBackend      = errors.New("unknown backend")
	ErrUnknownWorkload     = errors.New("unknown workload")
	ErrWorkerFailed        = errors.New("worker failed")
	ErrHandlesOutstanding  = errors.New("collection closed with outstanding handles")
)

// Collection is a concurrent map under test.
//
// One Collection is created per measured case with the initial capacity of
// the workload. Worker goroutines never share a Handle: each pins its own
// before the start barrier and uses it exclusively afterwards.
type Collection interface {
	// Pin returns a new handle onto this collection.
	Pin() Handle
	// Close releases the collection. It is called once, after every handle
	// has been released.
	Close() error
}

// Handle is a per-goroutine accessor of a Collection. Keys absent from the
// map are not errors: every method reports presence through its result.
type Handle interface {
	// Get reports whether key is present.
	Get(key uint64) bool
	// Insert adds key and reports true if it was absent. Inserting a
	// present key leaves the map unchanged and reports false.
	Insert(key uint64) bool
	// Remove deletes key and reports true if a value was removed.
	Remove(key uint64) bool
	// Update modifies the value of a present key and reports true.
	// It never inserts an absent key.
	Update(key uint64) bool
}

// Releaser is implemented by handles owning resources of their own.
type Releaser interface {
	Release()
}

// Reclaimer is implemented by collections with deferred reclamation that
// can be forced between two cases.
type Reclaimer interface {
	Reclaim()
}

// InsertReporter is implemented by collections whose handles report
// "the key was already present" from Insert, the inverse of Handle.Insert.
// The engine flips those results.
type InsertReporter interface {
	InsertReportsPresent() bool
}

// NewCollectionFunc creates a collection sized for capacity keys.
type NewCollectionFunc func(capacity int) (Collection, error)

// MakeBackendFunc binds a backend to the properties and the logger of a run.
type MakeBackendFunc func(p Properties, logger hclog.Logger) NewCollectionFunc

// BackendInfo describes a registered backend.
type BackendInfo struct {
	Name string
	Make MakeBackendFunc
	// Remote backends depend on an external service and only run when
	// selected explicitly.
	Remote bool
	Doc    string
}

var (
	Backends map[string]*BackendInfo
)

func init() {
	Backends = make(map[string]*BackendInfo)
	RegisterBackend(&BackendInfo{
		Name: "basic",
		Make: func(p Properties, _ hclog.Logger) NewCollectionFunc {
			return func(capacity int) (Collection, error) {
				return NewBasicCollection(p, capacity)
			}
		},
		Doc: "A mutex guarded map which could simulate delay and echo operations",
	})
}

// RegisterBackend adds info to `Backends`, replacing a backend of the
// same name.
func RegisterBackend(info *BackendInfo) {
	Backends[info.Name] = info
}

// BackendNames returns the names of the registered backends in order.
func BackendNames() []string {
	names := make([]string, 0, len(Backends))
	for name := range Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend looks up a registered backend by name and binds it to p and
// logger. A nil logger discards.
func NewBackend(name string, p Properties, logger hclog.Logger) (NewCollectionFunc, error) {
	info, ok := Backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, name)
	}
	return info.Make(p, loggerOrNull(logger)), nil
}

// leaseTable owns a Collection for the duration of one case and counts the
// handles pinned onto it.
type leaseTable struct {
	collection Collection
	flipInsert bool
	handles    atomic.Int64
	closed     atomic.Bool
}

func newLeaseTable(c Collection) *leaseTable {
	t := &leaseTable{
		collection: c,
	}
	if r, ok := c.(InsertReporter); ok {
		t.flipInsert = r.InsertReportsPresent()
	}
	return t
}

// pin returns a leased handle. Every lease must be released exactly once.
func (self *leaseTable) pin() *lease {
	if self.closed.Load() {
		panic("pin on a closed collection")
	}
	self.handles.Add(1)
	var h Handle = self.collection.Pin()
	if self.flipInsert {
		h = presentInsertHandle{h}
	}
	return &lease{
		Handle: h,
		table:  self,
	}
}

func (self *leaseTable) outstanding() int64 {
	return self.handles.Load()
}

func (self *leaseTable) close() error {
	if n := self.handles.Load(); n != 0 {
		return fmt.Errorf("%w: %d", ErrHandlesOutstanding, n)
	}
	if !self.closed.CompareAndSwap(false, true) {
		return g.NewErrorf("collection closed twice")
	}
	return self.collection.Close()
}

// lease is a handle counted by its table.
type lease struct {
	Handle
	table    *leaseTable
	released bool
}

func (self *lease) release() {
	if self.released {
		return
	}
	self.released = true
	if r, ok := self.Handle.(Releaser); ok {
		r.Release()
	}
	self.table.handles.Add(-1)
}

// presentInsertHandle adapts a handle whose Insert reports prior presence.
type presentInsertHandle struct {
	Handle
}

func (self presentInsertHandle) Insert(key uint64) bool {
	return !self.Handle.Insert(key)
}

func (self presentInsertHandle) Release() {
	if r, ok := self.Handle.(Releaser); ok {
		r.Release()
	}
}
