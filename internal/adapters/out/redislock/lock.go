// Package redislock implements ports.RunLock with a single redis key per
// lock. A lease owns the key through a random token and releasing checks the
// token, so a lease that outlived its TTL cannot delete a successor's key.
package redislock

import (
	"context"
	"fmt"
	"time"

	"courierops/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "courierops:lock:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Lock struct {
	client *redis.Client
}

func New(client *redis.Client) *Lock {
	return &Lock{client: client}
}

func (l *Lock) TryAcquire(ctx context.Context, key string, ttl time.Duration) (ports.Lease, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, keyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &lease{client: l.client, key: keyPrefix + key, token: token}, true, nil
}

type lease struct {
	client *redis.Client
	key    string
	token  string
}

// Release deletes the key if this lease still owns it.
func (l *lease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	return nil
}
