package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/services/auth"
)

const challengeKeyPrefix = "otp:challenge:"

// CreateChallenge stores an OTP challenge under its tmp_id with the given TTL
func (r *ChallengeRepo) CreateChallenge(ctx context.Context, challenge *models.OTPChallenge, ttl time.Duration) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal otp challenge: %w", err)
	}

	key := challengeKeyPrefix + challenge.TmpID
	if err := r.redisClient.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}

	return nil
}

// GetChallenge retrieves an OTP challenge by tmp_id. A missing or expired
// challenge returns ErrChallengeNotFound.
func (r *ChallengeRepo) GetChallenge(ctx context.Context, tmpID string) (*models.OTPChallenge, error) {
	data, err := r.redisClient.Get(ctx, challengeKeyPrefix+tmpID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get otp challenge: %w", err)
	}

	var challenge models.OTPChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp challenge: %w", err)
	}

	return &challenge, nil
}

// DeleteChallenge removes a challenge once it has been consumed
func (r *ChallengeRepo) DeleteChallenge(ctx context.Context, tmpID string) error {
	if err := r.redisClient.Delete(ctx, challengeKeyPrefix+tmpID); err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}
	return nil
}
