package mapbench

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
)

func TestStartBarrier(t *testing.T) {
	const parties = 8
	b := newStartBarrier(parties)
	var passed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < parties-1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Wait()
			passed.Add(1)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int64(0), passed.Load())
	b.Wait()
	wg.Wait()
	require.Equal(t, int64(parties-1), passed.Load())
}

func TestStartBarrierSingleParty(t *testing.T) {
	b := newStartBarrier(1)
	b.Wait()
}
