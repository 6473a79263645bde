package sharing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "share:grant:"

// RedisStore keeps grants in Redis with the code TTL as key expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key string, grant Grant, ttl time.Duration) error {
	payload, err := json.Marshal(grant)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, key string, consume bool) (*Grant, error) {
	var cmd *redis.StringCmd
	if consume {
		cmd = s.client.GetDel(ctx, redisKeyPrefix+key)
	} else {
		cmd = s.client.Get(ctx, redisKeyPrefix+key)
	}
	payload, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var grant Grant
	if err := json.Unmarshal(payload, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}
