package command

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const contextKeyPrefix = "cmd:ctx:"

// RedisContextStore keeps caller contexts in Redis so selections survive a
// process restart and can be shared by multiple instances. A zero TTL means
// contexts never expire, matching the in-memory store's lifecycle.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) SelectedClient(ctx context.Context, callerID string) (string, error) {
	data, err := s.client.Get(ctx, contextKeyPrefix+callerID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var cc callerContext
	if err := json.Unmarshal([]byte(data), &cc); err != nil {
		return "", err
	}
	return cc.SelectedClientID, nil
}

func (s *RedisContextStore) SelectClient(ctx context.Context, callerID, clientID string) error {
	b, err := json.Marshal(callerContext{SelectedClientID: clientID})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, contextKeyPrefix+callerID, b, s.ttl).Err()
}
