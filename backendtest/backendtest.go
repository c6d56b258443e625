// Package backendtest checks that a collection honours the semantics every
// backend must share: presence reporting of all four operations, idempotent
// insert, update never inserting, and handles usable from many goroutines.
package backendtest

import (
	"sync"
	"testing"

	"github.com/hhkbp2/mapbench"
	"github.com/hhkbp2/testify/require"
)

const (
	DefaultCapacity = 1024
)

// Run runs the contract suite against collections created by newCollection.
func Run(t *testing.T, newCollection mapbench.NewCollectionFunc) {
	t.Run("InsertGetRemove", func(t *testing.T) {
		c := create(t, newCollection)
		h := c.Pin()
		require.False(t, h.Get(1))
		require.True(t, h.Insert(1))
		require.True(t, h.Get(1))
		require.True(t, h.Remove(1))
		require.False(t, h.Get(1))
		require.False(t, h.Remove(1))
		release(h)
	})
	t.Run("InsertTwice", func(t *testing.T) {
		c := create(t, newCollection)
		h := c.Pin()
		require.True(t, h.Insert(7))
		require.False(t, h.Insert(7))
		require.True(t, h.Get(7))
		release(h)
	})
	t.Run("UpdateNeverInserts", func(t *testing.T) {
		c := create(t, newCollection)
		h := c.Pin()
		require.False(t, h.Update(3))
		require.False(t, h.Get(3))
		require.True(t, h.Insert(3))
		require.True(t, h.Update(3))
		require.True(t, h.Update(3))
		require.True(t, h.Get(3))
		require.True(t, h.Remove(3))
		require.False(t, h.Update(3))
		release(h)
	})
	t.Run("ExtremeKeys", func(t *testing.T) {
		c := create(t, newCollection)
		h := c.Pin()
		for _, key := range []uint64{0, 1 << 63, ^uint64(0)} {
			require.True(t, h.Insert(key))
			require.True(t, h.Get(key))
		}
		require.True(t, h.Remove(^uint64(0)))
		require.True(t, h.Get(0))
		require.False(t, h.Get(^uint64(0)))
		release(h)
	})
	t.Run("HandlesShareState", func(t *testing.T) {
		c := create(t, newCollection)
		h1 := c.Pin()
		h2 := c.Pin()
		require.True(t, h1.Insert(11))
		require.True(t, h2.Get(11))
		require.False(t, h2.Insert(11))
		require.True(t, h2.Remove(11))
		require.False(t, h1.Get(11))
		release(h1)
		release(h2)
	})
	t.Run("ConcurrentDisjointInserts", func(t *testing.T) {
		const (
			goroutines = 4
			perRoutine = 128
		)
		c := create(t, newCollection)
		handles := make([]mapbench.Handle, goroutines)
		for i := range handles {
			handles[i] = c.Pin()
		}
		var wg sync.WaitGroup
		failures := make([]int, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				h := handles[i]
				for j := 0; j < perRoutine; j++ {
					key := uint64(i*perRoutine + j)
					if !h.Insert(key) {
						failures[i]++
					}
				}
			}(i)
		}
		wg.Wait()
		for i := 0; i < goroutines; i++ {
			require.Equal(t, 0, failures[i])
		}
		h := handles[0]
		for key := uint64(0); key < goroutines*perRoutine; key++ {
			require.True(t, h.Get(key))
		}
		for _, h := range handles {
			release(h)
		}
	})
	t.Run("ConcurrentSameKeyInsert", func(t *testing.T) {
		const goroutines = 8
		c := create(t, newCollection)
		var wg sync.WaitGroup
		wins := make([]bool, goroutines)
		for i := 0; i < goroutines; i++ {
			h := c.Pin()
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer release(h)
				wins[i] = h.Insert(42)
			}(i)
		}
		wg.Wait()
		won := 0
		for _, w := range wins {
			if w {
				won++
			}
		}
		require.Equal(t, 1, won)
	})
}

// create makes a collection sized `DefaultCapacity` and closes it when the
// test ends. Collections whose Insert reports prior presence are adapted.
func create(t *testing.T, newCollection mapbench.NewCollectionFunc) mapbench.Collection {
	t.Helper()
	c, err := newCollection(DefaultCapacity)
	require.Nil(t, err)
	t.Cleanup(func() {
		require.Nil(t, c.Close())
	})
	if r, ok := c.(mapbench.InsertReporter); ok && r.InsertReportsPresent() {
		return flipped{c}
	}
	return c
}

type flipped struct {
	mapbench.Collection
}

func (self flipped) Pin() mapbench.Handle {
	return flippedHandle{self.Collection.Pin()}
}

type flippedHandle struct {
	mapbench.Handle
}

func (self flippedHandle) Insert(key uint64) bool {
	return !self.Handle.Insert(key)
}

func release(h mapbench.Handle) {
	if f, ok := h.(flippedHandle); ok {
		h = f.Handle
	}
	if r, ok := h.(mapbench.Releaser); ok {
		r.Release()
	}
}
