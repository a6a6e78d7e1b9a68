package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
)

// ErrUserNotFound is returned when no identity matches the lookup
var ErrUserNotFound = errors.New("user not found")

// ErrChallengeNotFound is returned when an OTP challenge is missing or expired
var ErrChallengeNotFound = errors.New("otp challenge not found")

// UserRepo defines the identity and credential storage operations
type UserRepo interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByMSISDN(ctx context.Context, msisdn string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateAPICredentials(ctx context.Context, userID, apiKey, apiSecret string) error
	ClearAPICredentials(ctx context.Context, userID string) error
	ValidateAPICredentials(ctx context.Context, apiKey, apiSecret string) (*models.User, error)
}

// ChallengeRepo defines the OTP challenge store. A challenge lives under its
// tmp_id for the store TTL and is deleted once verification succeeds.
type ChallengeRepo interface {
	CreateChallenge(ctx context.Context, challenge *models.OTPChallenge, ttl time.Duration) error
	GetChallenge(ctx context.Context, tmpID string) (*models.OTPChallenge, error)
	DeleteChallenge(ctx context.Context, tmpID string) error
}
