package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func redisSessionKey(sid string) string {
	return "session:" + sid
}

// RedisSessionStore keeps session payloads in redis hashes with a TTL.
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Save(ctx context.Context, sid string, data SessionData, ttl time.Duration) error {
	key := redisSessionKey(sid)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    data.UserID,
		"name":       data.Name,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisSessionStore) Get(ctx context.Context, sid string) (SessionData, bool, error) {
	fields, err := s.rdb.HGetAll(ctx, redisSessionKey(sid)).Result()
	if err != nil {
		return SessionData{}, false, err
	}
	if len(fields) == 0 {
		return SessionData{}, false, nil
	}
	return SessionData{UserID: fields["user_id"], Name: fields["name"]}, true, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, redisSessionKey(sid)).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)
