package binding

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/mapbench"
	"github.com/hhkbp2/mapbench/backendtest"
	"github.com/hhkbp2/testify/require"
)

func TestOtterMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewOtterMap(capacity)
	})
}

func TestLockedLRU(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewLockedLRU(capacity)
	})
}

func TestLockedLRUEvicts(t *testing.T) {
	l, err := NewLockedLRU(2)
	require.Nil(t, err)
	h := l.Pin()
	require.True(t, h.Insert(1))
	require.True(t, h.Insert(2))
	require.True(t, h.Get(1))
	require.True(t, h.Insert(3))
	require.Equal(t, 2, l.Len())
	require.True(t, h.Get(1))
	require.False(t, h.Get(2))
	require.Nil(t, l.Close())
	require.Equal(t, 0, l.Len())
}

func TestRistrettoMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewRistrettoMap(capacity)
	})
}

func TestRistrettoMapReinsert(t *testing.T) {
	m, err := NewRistrettoMap(16)
	require.Nil(t, err)
	defer m.Close()
	h := m.Pin()
	for i := 0; i < 3; i++ {
		require.True(t, h.Insert(7))
		require.True(t, h.Update(7))
		require.True(t, h.Remove(7))
		require.False(t, h.Get(7))
	}
}

func TestFreecacheMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewFreecacheMap(capacity, 64), nil
	})
}

func TestFreecacheMapCounts(t *testing.T) {
	m := NewFreecacheMap(1024, 64)
	h := m.Pin()
	for key := uint64(0); key < 100; key++ {
		require.True(t, h.Insert(key))
	}
	require.True(t, h.Update(3))
	require.True(t, h.Update(3))
	require.False(t, h.Insert(3))
	require.Equal(t, int64(100), m.EntryCount())
	require.Nil(t, m.Close())
	require.Equal(t, int64(0), m.EntryCount())
}

func TestBadgerMap(t *testing.T) {
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewBadgerMap("", hclog.NewNullLogger())
	})
}

func TestBadgerMapOnDisk(t *testing.T) {
	m, err := NewBadgerMap(t.TempDir(), hclog.NewNullLogger())
	require.Nil(t, err)
	h := m.Pin()
	require.True(t, h.Insert(9))
	require.True(t, h.Update(9))
	require.True(t, h.Remove(9))
	m.Reclaim()
	require.False(t, h.Get(9))
	require.Nil(t, m.Close())
}
