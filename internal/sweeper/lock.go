package sweeper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker guards a sweep pass so that only one replica runs it at a time.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// Deletes the key only while it still holds our token, so a pass that outlived
// its TTL cannot release a lock another replica has since taken.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	token  string
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, token: uuid.NewString()}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, l.token, ttl).Result()
}

func (l *RedisLocker) Unlock(ctx context.Context, key string) error {
	return unlockScript.Run(ctx, l.client, []string{key}, l.token).Err()
}

// LocalLocker is used when no Redis is configured. The cron chain already
// keeps a single process from overlapping itself.
type LocalLocker struct{}

func (LocalLocker) TryLock(context.Context, string, time.Duration) (bool, error) { return true, nil }
func (LocalLocker) Unlock(context.Context, string) error                         { return nil }
