package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-mall-service/internal/selection"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "selection:session:"

type RedisStore struct {
	cache *cache.RedisClient
	ttl   time.Duration
}

func NewRedisStore(c *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: c, ttl: ttl}
}

// Save writes the session and restarts its TTL.
func (s *RedisStore) Save(ctx context.Context, sess *selection.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.cache.Client.Set(ctx, keyPrefix+sess.ID, data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (*selection.Session, error) {
	val, err := s.cache.Client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, selection.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess selection.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.cache.Client.Del(ctx, keyPrefix+id).Err()
}
