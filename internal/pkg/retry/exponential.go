package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries    int              // Maximum number of retry attempts
	BaseDelay     time.Duration    // Base delay between retries
	MaxDelay      time.Duration    // Maximum delay between retries
	Multiplier    float64          // Exponential backoff multiplier
	Jitter        bool             // Add randomization to prevent thundering herd
	RetryableFunc func(error) bool // Function to determine if error is retryable
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
		RetryableFunc: func(error) bool {
			return true
		},
	}
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	config Config
}

// New creates a new retrier with the given configuration
func New(config Config) *Retrier {
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.Multiplier <= 1 {
		config.Multiplier = 2.0
	}
	return &Retrier{config: config}
}

// Do executes fn, retrying retryable failures with exponential backoff until
// it succeeds, the retry budget is exhausted, or the context is cancelled.
func (r *Retrier) Do(ctx context.Context, name string, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := r.backoff(attempt)
			logger.Warn("Retrying operation",
				logger.String("operation", name),
				logger.Int("attempt", attempt),
				logger.Duration("delay", delay),
				logger.Err(lastErr))

			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled during retry: %w", name, ctx.Err())
			case <-time.After(delay):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !r.config.RetryableFunc(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, r.config.MaxRetries+1, lastErr)
}

// backoff computes the delay before the given attempt
func (r *Retrier) backoff(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if max := float64(r.config.MaxDelay); delay > max {
		delay = max
	}
	if r.config.Jitter {
		delay = delay/2 + rand.Float64()*delay/2
	}
	return time.Duration(delay)
}
