package mapbench

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"
)

// BasicCollection is a map guarded by a single mutex. It could optionally
// simulate a delay for every operation and echo operations to its output,
// which makes it handy to check a workload before running real backends.
type BasicCollection struct {
	mu             sync.Mutex
	m              map[uint64]uint32
	verbose        bool
	randomizeDelay bool
	toDelay        int64
	out            io.Writer
}

func NewBasicCollection(p Properties, capacity int) (*BasicCollection, error) {
	verbose, err := p.GetBool(ConfigBasicVerbose, ConfigBasicVerboseDefault)
	if err != nil {
		return nil, err
	}
	toDelay, err := p.GetInt64(ConfigSimulateDelay, ConfigSimulateDelayDefault)
	if err != nil {
		return nil, err
	}
	randomizeDelay, err := p.GetBool(ConfigRandomizeDelay, ConfigRandomizeDelayDefault)
	if err != nil {
		return nil, err
	}
	object := &BasicCollection{
		m:              make(map[uint64]uint32, capacity),
		verbose:        verbose,
		randomizeDelay: randomizeDelay,
		toDelay:        toDelay,
		out:            os.Stdout,
	}
	if verbose {
		OutputProperties(object.out, p)
	}
	return object, nil
}

// SetOutput redirects the echo of operations.
func (self *BasicCollection) SetOutput(w io.Writer) {
	self.out = w
}

// Len returns the number of keys present.
func (self *BasicCollection) Len() int {
	self.mu.Lock()
	defer self.mu.Unlock()
	return len(self.m)
}

func (self *BasicCollection) Pin() Handle {
	return &basicHandle{self}
}

func (self *BasicCollection) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.m = nil
	return nil
}

func (self *BasicCollection) delay() {
	if self.toDelay > 0 {
		var millis int64
		if self.randomizeDelay {
			millis = rand.Int64N(self.toDelay)
			if millis == 0 {
				return
			}
		} else {
			millis = self.toDelay
		}
		time.Sleep(MillisecondToDuration(millis))
	}
}

func (self *BasicCollection) echo(op string, key uint64, ok bool) {
	if self.verbose {
		fmt.Fprintf(self.out, "%s %d %v\n", op, key, ok)
	}
}

type basicHandle struct {
	c *BasicCollection
}

func (self *basicHandle) Get(key uint64) bool {
	self.c.delay()
	self.c.mu.Lock()
	_, ok := self.c.m[key]
	self.c.mu.Unlock()
	self.c.echo("GET", key, ok)
	return ok
}

func (self *basicHandle) Insert(key uint64) bool {
	self.c.delay()
	self.c.mu.Lock()
	_, present := self.c.m[key]
	if !present {
		self.c.m[key] = 0
	}
	self.c.mu.Unlock()
	self.c.echo("INSERT", key, !present)
	return !present
}

func (self *basicHandle) Remove(key uint64) bool {
	self.c.delay()
	self.c.mu.Lock()
	_, ok := self.c.m[key]
	if ok {
		delete(self.c.m, key)
	}
	self.c.mu.Unlock()
	self.c.echo("REMOVE", key, ok)
	return ok
}

func (self *basicHandle) Update(key uint64) bool {
	self.c.delay()
	self.c.mu.Lock()
	v, ok := self.c.m[key]
	if ok {
		self.c.m[key] = v + 1
	}
	self.c.mu.Unlock()
	self.c.echo("UPDATE", key, ok)
	return ok
}
