package binding

import (
	"os"
	"testing"

	"github.com/hhkbp2/mapbench"
	"github.com/hhkbp2/mapbench/backendtest"
	"github.com/hhkbp2/testify/require"
	"github.com/redis/go-redis/v9"
)

func TestRedisMap(t *testing.T) {
	addr := os.Getenv("MAPBENCH_REDIS_ADDR")
	if len(addr) == 0 {
		t.Skip("MAPBENCH_REDIS_ADDR not set")
	}
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewRedisMap(&redis.Options{Addr: addr})
	})
}

func TestRedisMapUnavailable(t *testing.T) {
	p := mapbench.NewProperties()
	p.Add(PropertyRedisAddr, "127.0.0.1:1")
	p.Add(PropertyRedisTimeout, "100")
	_, err := NewRedisMapFromProperties(p)
	require.NotNil(t, err)
	require.True(t, errorIs(err, mapbench.ErrBackendUnavailable))
}

func TestMysqlMap(t *testing.T) {
	dsn := os.Getenv("MAPBENCH_MYSQL_DSN")
	if len(dsn) == 0 {
		t.Skip("MAPBENCH_MYSQL_DSN not set")
	}
	backendtest.Run(t, func(capacity int) (mapbench.Collection, error) {
		return NewMysqlMap(dsn)
	})
}

func TestMysqlDSNFromProperties(t *testing.T) {
	p := mapbench.NewProperties()
	p.Add(PropertyMysqlHost, "db.local")
	p.Add(PropertyMysqlPort, "3307")
	p.Add(PropertyMysqlUser, "bench")
	p.Add(PropertyMysqlPassword, "secret")
	p.Add(PropertyMysqlDatabase, "maps")
	p.Add(PropertyMysqlOptions, "charset=utf8mb4")
	dsn, err := MysqlDSNFromProperties(p)
	require.Nil(t, err)
	require.Equal(t, "bench:secret@tcp(db.local:3307)/maps?charset=utf8mb4", dsn)

	p.Add(PropertyMysqlDSN, "u:p@tcp(h:1)/d")
	dsn, err = MysqlDSNFromProperties(p)
	require.Nil(t, err)
	require.Equal(t, "u:p@tcp(h:1)/d", dsn)

	p = mapbench.NewProperties()
	p.Add(PropertyMysqlPort, "x")
	_, err = MysqlDSNFromProperties(p)
	require.NotNil(t, err)
}
