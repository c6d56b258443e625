package binding

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hhkbp2/mapbench"
	"github.com/redis/go-redis/v9"
)

const (
	PropertyRedisAddr            = "redis.addr"
	PropertyRedisAddrDefault     = "127.0.0.1:6379"
	PropertyRedisPassword        = "redis.password"
	PropertyRedisPasswordDefault = ""
	PropertyRedisDB              = "redis.db"
	PropertyRedisDBDefault       = "0"
	PropertyRedisTimeout         = "redis.timeoutms"
	PropertyRedisTimeoutDefault  = "1000"
)

// redisUpdateScript increments a present key and returns 1, or returns 0
// for an absent key without creating it.
var redisUpdateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  redis.call('INCR', KEYS[1])
  return 1
end
return 0
`)

// RedisMap keeps its keys in a redis database under a prefix unique to the
// collection, so that cases sharing one server never see each other's keys.
type RedisMap struct {
	client *redis.Client
	prefix string
}

func NewRedisMapFromProperties(p mapbench.Properties) (*RedisMap, error) {
	db, err := p.GetInt64(PropertyRedisDB, PropertyRedisDBDefault)
	if err != nil {
		return nil, err
	}
	timeout, err := p.GetInt64(PropertyRedisTimeout, PropertyRedisTimeoutDefault)
	if err != nil {
		return nil, err
	}
	return NewRedisMap(&redis.Options{
		Addr:        p.GetDefault(PropertyRedisAddr, PropertyRedisAddrDefault),
		Password:    p.GetDefault(PropertyRedisPassword, PropertyRedisPasswordDefault),
		DB:          int(db),
		DialTimeout: mapbench.MillisecondToDuration(timeout),
	})
}

// NewRedisMap connects to the server and checks it responds.
func NewRedisMap(opts *redis.Options) (*RedisMap, error) {
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis %s: %s", mapbench.ErrBackendUnavailable, opts.Addr, err)
	}
	return &RedisMap{
		client: client,
		prefix: fmt.Sprintf("mapbench:%s:", uuid.NewString()),
	}, nil
}

func (self *RedisMap) Pin() mapbench.Handle {
	return &redisHandle{
		m:   self,
		ctx: context.Background(),
	}
}

// Close deletes the keys of this collection and disconnects.
func (self *RedisMap) Close() error {
	ctx := context.Background()
	iter := self.client.Scan(ctx, 0, self.prefix+"*", 1000).Iterator()
	batch := make([]string, 0, 1000)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := self.client.Del(ctx, batch...).Err(); err != nil {
				self.client.Close()
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		self.client.Close()
		return err
	}
	if len(batch) > 0 {
		if err := self.client.Del(ctx, batch...).Err(); err != nil {
			self.client.Close()
			return err
		}
	}
	return self.client.Close()
}

type redisHandle struct {
	m   *RedisMap
	ctx context.Context
}

func (self *redisHandle) key(key uint64) string {
	return self.m.prefix + strconv.FormatUint(key, 16)
}

func (self *redisHandle) Get(key uint64) bool {
	n, err := self.m.client.Exists(self.ctx, self.key(key)).Result()
	if err != nil {
		panic(fmt.Sprintf("redis exists: %s", err))
	}
	return n == 1
}

func (self *redisHandle) Insert(key uint64) bool {
	ok, err := self.m.client.SetNX(self.ctx, self.key(key), 0, 0).Result()
	if err != nil {
		panic(fmt.Sprintf("redis setnx: %s", err))
	}
	return ok
}

func (self *redisHandle) Remove(key uint64) bool {
	n, err := self.m.client.Del(self.ctx, self.key(key)).Result()
	if err != nil {
		panic(fmt.Sprintf("redis del: %s", err))
	}
	return n == 1
}

func (self *redisHandle) Update(key uint64) bool {
	n, err := redisUpdateScript.Run(self.ctx, self.m.client, []string{self.key(key)}).Int()
	if err != nil {
		panic(fmt.Sprintf("redis update: %s", err))
	}
	return n == 1
}
