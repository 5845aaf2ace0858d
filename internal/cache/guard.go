package cache

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// Guard concede uma chave uma única vez dentro do ttl.
// Release devolve a chave antes do ttl.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Nop sempre concede (sem deduplicação).
type Nop struct{}

func (Nop) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

func (Nop) Release(context.Context, string) error { return nil }

type RedisGuard struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisGuard(rdb *redis.Client, prefix string) *RedisGuard {
	return &RedisGuard{rdb: rdb, prefix: prefix}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.rdb.SetNX(ctx, g.prefix+key, time.Now().Unix(), ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.rdb.Del(ctx, g.prefix+key).Err()
}

// Key monta "parte1:parte2:...".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
