// Package ratelimit provides a fixed-window request counter backed by redis.
// Counters are keyed by (operation, client key) so independent quotas never
// interfere with each other.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
	"github.com/dhwani-ris/authgate/internal/pkg/database"
	"github.com/dhwani-ris/authgate/internal/pkg/logger"
)

const keyPrefix = "ratelimit"

// Limiter counts attempts per operation and key within a rolling window
type Limiter struct {
	redis *database.RedisClient
}

// NewLimiter creates a redis-backed fixed-window limiter
func NewLimiter(redis *database.RedisClient) *Limiter {
	return &Limiter{redis: redis}
}

// Allow records one attempt for (op, key) and returns a rate-limit error once
// the count within the window exceeds limit. The window starts at the first
// attempt. A counter-store failure is an internal error; the caller must not
// proceed with the guarded operation.
func (l *Limiter) Allow(ctx context.Context, op, key string, limit int, window time.Duration) error {
	counterKey := fmt.Sprintf("%s:%s:%s", keyPrefix, op, key)

	count, err := l.redis.Incr(ctx, counterKey)
	if err != nil {
		return apperrors.Internal("Too many requests", fmt.Errorf("rate limit counter: %w", err))
	}

	// First attempt in the window owns the expiry.
	if count == 1 {
		if err := l.redis.Expire(ctx, counterKey, window); err != nil {
			return apperrors.Internal("Too many requests", fmt.Errorf("rate limit expiry: %w", err))
		}
	}

	if count > int64(limit) {
		logger.Warn("Rate limit exceeded",
			logger.String("operation", op),
			logger.String("key", key),
			logger.Int64("count", count),
			logger.Int("limit", limit))
		return apperrors.RateLimit("Too many requests, please try again later")
	}

	return nil
}
