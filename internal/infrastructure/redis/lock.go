package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = goRedis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker hands out short-lived exclusive locks so only one replica runs a
// scheduled job at a time.
type Locker struct {
	client *goRedis.Client
	prefix string
}

func NewLocker(client *goRedis.Client, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

// TryLock takes key for ttl with SET NX PX. ok is false when another holder
// owns it. release is safe to call after the lock expired.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, ok bool, err error) {
	full := l.prefix + key
	token := uuid.NewString()
	ok, err = l.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{full}, token).Err()
	}, true, nil
}
