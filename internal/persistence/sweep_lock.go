package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sweepLockKey = "helpdesk:sweep:lock"

// RedisSweepLock serializes sweep execution across processes sharing a
// backing store. Acquire is SETNX with a TTL so a crashed holder cannot wedge
// sweeps forever.
type RedisSweepLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSweepLock creates the lock.
func NewRedisSweepLock(r *Redis, ttl time.Duration) *RedisSweepLock {
	if r == nil || r.Client == nil {
		return nil
	}
	return &RedisSweepLock{client: r.Client, ttl: ttl}
}

// Acquire attempts to take the lock. It returns false when another sweep
// holds it.
func (l *RedisSweepLock) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, sweepLockKey, "1", l.ttl).Result()
}

// Release drops the lock.
func (l *RedisSweepLock) Release(ctx context.Context) {
	_ = l.client.Del(ctx, sweepLockKey).Err()
}
