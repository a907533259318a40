package sessionstore

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/dfs-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	liveSessionsKey   = "maze:sessions:live"
	sessionLockKeyFmt = "maze:sessions:%s:driver_lock"
)

// RedisSessionRegistry tracks live maze sessions in a Redis sorted set,
// scored by last-activity time, and hands out per-session driver locks.
// Only liveness metadata lives in Redis; maze cell state never leaves the
// process that owns the engine.
type RedisSessionRegistry struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSessionRegistry initializes a RedisSessionRegistry with the
// provided Redis client and idle TTL. Sessions untouched for longer than
// the TTL are pruned from the registry.
func NewRedisSessionRegistry(client *redis.Client, ttlSeconds int) (i.SessionRegistry, error) {
	registry := &RedisSessionRegistry{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	registry.locker = redsync.New(pool)
	return registry, nil
}

// Register records a new live session with the current time as its score.
func (rsr *RedisSessionRegistry) Register(ctx context.Context, id string) error {
	return rsr.Touch(ctx, id)
}

// Touch refreshes a session's last-activity score and prunes entries that
// have sat idle past the TTL.
func (rsr *RedisSessionRegistry) Touch(ctx context.Context, id string) error {
	now := time.Now().UnixNano()
	_, err := rsr.client.ZAdd(ctx, liveSessionsKey, redis.Z{Score: float64(now), Member: id}).Result()
	if err != nil {
		return err
	}

	rsr.pruneExpired(ctx)
	return nil
}

// Remove drops a session from the registry.
func (rsr *RedisSessionRegistry) Remove(ctx context.Context, id string) error {
	return rsr.client.ZRem(ctx, liveSessionsKey, id).Err()
}

// Count returns the number of live sessions after pruning idle ones.
func (rsr *RedisSessionRegistry) Count(ctx context.Context) int64 {
	rsr.pruneExpired(ctx)
	return rsr.client.ZCard(ctx, liveSessionsKey).Val()
}

// Lock acquires the distributed driver lock for a session so that only one
// caller at a time advances its generation, even across replicas sharing
// this registry.
func (rsr *RedisSessionRegistry) Lock(ctx context.Context, id string) (func(), error) {
	mutex := rsr.locker.NewMutex(fmt.Sprintf(sessionLockKeyFmt, id))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.UnlockContext(ctx)
	}, nil
}

// pruneExpired drops registry entries whose last activity predates the TTL.
func (rsr *RedisSessionRegistry) pruneExpired(ctx context.Context) {
	cutoff := time.Now().Add(-rsr.ttl).UnixNano()
	_ = rsr.client.ZRemRangeByScore(ctx, liveSessionsKey, "-inf", fmt.Sprintf("%d", cutoff)).Err()
}
