package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
)

const (
	apiKeyBytes    = 16
	apiSecretBytes = 32
)

// ensureCredentials returns the user's API credential pair, generating and
// persisting a fresh random pair when either half is unset. Repeated calls
// without an intervening revoke return the same pair. A benign concurrent
// double-generate is acceptable; last write wins.
func (u *AuthUC) ensureCredentials(ctx context.Context, user *models.User) (string, string, error) {
	if user.HasCredentials() {
		return user.APIKey, user.APISecret, nil
	}

	apiKey, err := randomToken(apiKeyBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate api key: %w", err)
	}
	apiSecret, err := randomToken(apiSecretBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate api secret: %w", err)
	}

	// No token without a durable pair: the write must land before encoding.
	if err := u.userRepo.UpdateAPICredentials(ctx, user.ID.String(), apiKey, apiSecret); err != nil {
		return "", "", err
	}

	user.APIKey = apiKey
	user.APISecret = apiSecret

	return apiKey, apiSecret, nil
}

// randomToken returns a URL-safe string carrying n bytes of entropy
func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
