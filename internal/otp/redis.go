package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps codes in redis so every API replica sees the same state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(k string) string { return "otp:" + k }

func (s *RedisStore) Put(ctx context.Context, k, code string, ttl time.Duration) error {
	return s.client.SetEx(ctx, key(k), code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, k string) (string, error) {
	code, err := s.client.Get(ctx, key(k)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	return code, err
}

// Consume removes the code atomically so it cannot be redeemed twice.
func (s *RedisStore) Consume(ctx context.Context, k string) (string, error) {
	code, err := s.client.GetDel(ctx, key(k)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	return code, err
}

// RedisLimiter counts requests with INCR and expires the counter at the
// window boundary.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Allow(ctx context.Context, k string, max int, window time.Duration) (bool, error) {
	rk := "otp:rate:" + k
	count, err := l.client.Incr(ctx, rk).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, rk, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(max), nil
}
