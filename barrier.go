package mapbench

import (
	"sync/atomic"
)

// startBarrier releases all parties at once, after the last of them arrived.
// It is single use.
type startBarrier struct {
	parties int64
	arrived atomic.Int64
	release chan struct{}
}

func newStartBarrier(parties int) *startBarrier {
	return &startBarrier{
		parties: int64(parties),
		release: make(chan struct{}),
	}
}

// Wait blocks until every party called Wait.
func (self *startBarrier) Wait() {
	if self.arrived.Add(1) == self.parties {
		close(self.release)
	}
	<-self.release
}
