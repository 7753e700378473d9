package otp

import (
	"context"
	"errors"
	"time"
)

// ErrCodeNotFound is returned when no live code exists for the key.
var ErrCodeNotFound = errors.New("otp code not found or expired")

// Store keeps one-time codes with a TTL. Consume removes the code so a
// code can be redeemed at most once.
type Store interface {
	Put(ctx context.Context, key, code string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Consume(ctx context.Context, key string) (string, error)
}

// Limiter counts requests per key inside a sliding window.
type Limiter interface {
	Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error)
}
