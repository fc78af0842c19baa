// Package lock provides per-key run locks backed by Redis.
// A lock is a single key holding a random token:
//
//	Key:   lock:<key>
//	Value: <token>
//	TTL:   lock ttl
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Prefix is the Redis key prefix for lock records.
const Prefix = "lock:"

// ErrNotHeld is returned by unlock when the lock expired or was taken over.
var ErrNotHeld = errors.New("lock no longer held")

// releaseLua deletes the key only if it still holds our token.
const releaseLua = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// RedisLocker implements matching.Locker with SET NX PX.
type RedisLocker struct {
	client  redis.UniversalClient
	release *redis.Script
}

// NewRedisLocker creates a locker using the provided Redis client.
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client, release: redis.NewScript(releaseLua)}
}

// TryLock acquires key for ttl without blocking. ok is false if another holder owns it.
// The returned unlock releases the lock only while this holder still owns it.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	redisKey := Prefix + key
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !acquired {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		n, err := l.release.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if n == 0 {
			return ErrNotHeld
		}
		return nil
	}
	return unlock, true, nil
}
