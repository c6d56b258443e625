package binding

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hhkbp2/mapbench"
)

// AddBindings registers every backend of this package.
func AddBindings() {
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "MutexStd",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewMutexMap(capacity), nil
			}
		},
		Doc: "map guarded by a sync.Mutex",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "RwLockStd",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewRWMutexMap(capacity), nil
			}
		},
		Doc: "map guarded by a sync.RWMutex",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "SyncMap",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewSyncMap(), nil
			}
		},
		Doc: "sync.Map",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "ShardedMap",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				shards, err := p.GetInt64(PropertyShardCount, PropertyShardCountDefault)
				if err != nil {
					return nil, err
				}
				hasher, err := NewHasher(p.GetDefault(mapbench.PropertyHasher, mapbench.PropertyHasherDefault))
				if err != nil {
					return nil, err
				}
				return NewShardedMap(int(shards), hasher, capacity), nil
			}
		},
		Doc: "RWMutex guarded shards selected by the configured hasher",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "Otter",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewOtterMap(capacity)
			}
		},
		Doc: "unbounded otter cache",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "LockedLRU",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewLockedLRU(capacity)
			}
		},
		Doc: "LRU cache bounded by the capacity behind a sync.Mutex",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "Ristretto",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewRistrettoMap(capacity)
			}
		},
		Doc: "ristretto cache sized for twice the capacity with serialised writers",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "Freecache",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				bytesPerKey, err := p.GetInt64(PropertyFreecacheBytesPerKey, PropertyFreecacheBytesPerKeyDefault)
				if err != nil {
					return nil, err
				}
				return NewFreecacheMap(capacity, int(bytesPerKey)), nil
			}
		},
		Doc: "freecache segments sized by freecache.bytesperkey",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "Badger",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewBadgerMap(p.GetDefault(PropertyBadgerDir, PropertyBadgerDirDefault), logger.Named("badger"))
			}
		},
		Doc: "badger key-value store, in memory unless badger.dir is set",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "Redis",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				return NewRedisMapFromProperties(p)
			}
		},
		Remote: true,
		Doc:    "redis server at redis.addr",
	})
	mapbench.RegisterBackend(&mapbench.BackendInfo{
		Name: "MySQL",
		Make: func(p mapbench.Properties, logger hclog.Logger) mapbench.NewCollectionFunc {
			return func(capacity int) (mapbench.Collection, error) {
				dsn, err := MysqlDSNFromProperties(p)
				if err != nil {
					return nil, err
				}
				return NewMysqlMap(dsn)
			}
		},
		Remote: true,
		Doc:    "mysql table on the server configured by the mysql.* properties",
	})
}
