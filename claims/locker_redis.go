package claims

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const claimLockKeyPrefix = "claim:lock:"

// releaseScript deletes the lock only if it still holds our token, so an expired
// lock taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares claim locks between instances. The TTL bounds how long a
// crashed instance can block a key.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := claimLockKeyPrefix + key
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("claim lock %s: %w", key, err)
	}
	if !acquired {
		return nil, apperrors.Wrapf(apperrors.ErrClaimInProgress, "%s", key)
	}

	return func() {
		// The request context may already be cancelled when the claim finishes.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			log.Err(err).Str("key", redisKey).Msg("failed to release claim lock")
		}
	}, nil
}
