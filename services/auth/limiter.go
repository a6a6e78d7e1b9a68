package auth

import (
	"context"
	"time"
)

// RateLimiter counts attempts per (operation, key) within a rolling window
// and rejects the attempt once the quota is exceeded
type RateLimiter interface {
	Allow(ctx context.Context, op, key string, limit int, window time.Duration) error
}
