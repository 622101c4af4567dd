package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our owner token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every instance of the service.
type Redis struct {
	client  redis.UniversalClient
	maxWait time.Duration
}

func NewRedis(client redis.UniversalClient, maxWait time.Duration) *Redis {
	return &Redis{client: client, maxWait: maxWait}
}

func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	owner, err := ownerToken()
	if err != nil {
		return nil, err
	}
	err = acquireWithin(ctx, r.maxWait, func(ctx context.Context) (bool, error) {
		return r.client.SetNX(ctx, key, owner, ttl).Result()
	})
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, r.client, []string{key}, owner).Err()
	}, nil
}
