package binding

import (
	"errors"
	"io"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/mapbench"
	"github.com/hhkbp2/testify/require"
)

func errorIs(err, target error) bool {
	return errors.Is(err, target)
}

func TestAddBindings(t *testing.T) {
	AddBindings()
	for _, name := range []string{"basic", "MutexStd", "RwLockStd", "SyncMap", "ShardedMap", "Otter", "LockedLRU", "Ristretto", "Freecache", "Badger", "Redis", "MySQL"} {
		info, ok := mapbench.Backends[name]
		require.True(t, ok, name)
		require.Equal(t, name, info.Name)
	}
	require.True(t, mapbench.Backends["Redis"].Remote)
	require.True(t, mapbench.Backends["MySQL"].Remote)
	require.False(t, mapbench.Backends["ShardedMap"].Remote)
}

func TestShardedMapBadHasher(t *testing.T) {
	AddBindings()
	p := mapbench.NewProperties()
	p.Add(mapbench.PropertyHasher, "md5")
	newCollection, err := mapbench.NewBackend("ShardedMap", p, nil)
	require.Nil(t, err)
	_, err = newCollection(16)
	require.NotNil(t, err)
}

func TestBadgerUsesInjectedLogger(t *testing.T) {
	AddBindings()
	logger := hclog.New(&hclog.LoggerOptions{Name: "sweep", Output: io.Discard})
	newCollection, err := mapbench.NewBackend("Badger", mapbench.NewProperties(), logger)
	require.Nil(t, err)
	c, err := newCollection(64)
	require.Nil(t, err)
	defer c.Close()
	require.Equal(t, "sweep.badger", c.(*BadgerMap).logger.Name())
}

func TestRegisteredLocalBackends(t *testing.T) {
	AddBindings()
	p := mapbench.NewProperties()
	for _, name := range mapbench.BackendNames() {
		if mapbench.Backends[name].Remote {
			continue
		}
		newCollection, err := mapbench.NewBackend(name, p, hclog.NewNullLogger())
		require.Nil(t, err)
		c, err := newCollection(64)
		require.Nil(t, err, name)
		h := c.Pin()
		require.False(t, h.Get(5), name)
		require.Nil(t, c.Close(), name)
	}
}
