// Package token implements the encrypted bearer token codec. A token is a
// compact JWE (direct key agreement, A256GCM) over a small JSON payload
// carrying an API credential pair and an expiration timestamp. Tokens are
// self-contained; no server-side session state exists for them.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	jose "github.com/go-jose/go-jose/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
)

// DefaultExpiry is the token lifetime used when none is configured
const DefaultExpiry = 86400 * time.Second

// payload is the plaintext carried inside a token
type payload struct {
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	ExpiresAt int64  `json:"expires_at"`
}

// Codec encrypts and decrypts bearer tokens under a process-wide secret.
// All operations on one codec instance use the same derived key; a token
// encrypted under a different secret fails decryption as an authentication
// error.
type Codec struct {
	key        []byte
	defaultTTL time.Duration
}

// NewCodec builds a codec from the token configuration. The encryption key
// is derived from the configured secret with SHA-256. When no secret is
// configured a random one is generated; tokens issued under it become
// invalid when the process restarts.
func NewCodec(cfg models.TokenConfig) *Codec {
	secret := cfg.Secret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			logger.Error("Failed to generate fallback token secret", logger.Err(err))
		}
		secret = hex.EncodeToString(buf)
		logger.Warn("No token encryption secret configured, generated a random one; tokens will not survive a restart")
	}

	key := sha256.Sum256([]byte(secret))

	ttl := DefaultExpiry
	if cfg.ExpirySeconds > 0 {
		ttl = time.Duration(cfg.ExpirySeconds) * time.Second
	}

	return &Codec{key: key[:], defaultTTL: ttl}
}

// DefaultTTL returns the configured token lifetime
func (c *Codec) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Encode encrypts an API credential pair into an opaque bearer token that
// expires ttl from now. Cipher internals never leak to the caller; any
// failure is surfaced as a generic authentication error.
func (c *Codec) Encode(apiKey, apiSecret string, ttl time.Duration) (string, error) {
	p := payload{
		APIKey:    apiKey,
		APISecret: apiSecret,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}

	data, err := json.Marshal(p)
	if err != nil {
		logger.Error("Failed to serialize token payload", logger.Err(err))
		return "", apperrors.Authentication("Failed to encode API credentials")
	}

	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: c.key},
		nil,
	)
	if err != nil {
		logger.Error("Failed to create token encrypter", logger.Err(err))
		return "", apperrors.Authentication("Failed to encode API credentials")
	}

	obj, err := enc.Encrypt(data)
	if err != nil {
		logger.Error("Failed to encrypt token payload", logger.Err(err))
		return "", apperrors.Authentication("Failed to encode API credentials")
	}

	tok, err := obj.CompactSerialize()
	if err != nil {
		logger.Error("Failed to serialize token", logger.Err(err))
		return "", apperrors.Authentication("Failed to encode API credentials")
	}

	return tok, nil
}

// Decode decrypts a bearer token and returns the API credential pair.
// Every failure cause is logged with its specific reason but collapsed to
// one generic authentication error so callers learn nothing about why a
// token is invalid.
func (c *Codec) Decode(tok string) (string, string, error) {
	obj, err := jose.ParseEncrypted(
		tok,
		[]jose.KeyAlgorithm{jose.DIRECT},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		logger.Warn("Token is not a valid encrypted message", logger.Err(err))
		return "", "", apperrors.Authentication("Invalid authentication token")
	}

	data, err := obj.Decrypt(c.key)
	if err != nil {
		logger.Warn("Token decryption failed", logger.Err(err))
		return "", "", apperrors.Authentication("Invalid authentication token")
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn("Token payload is not valid JSON", logger.Err(err))
		return "", "", apperrors.Authentication("Invalid authentication token")
	}

	if p.ExpiresAt == 0 {
		logger.Warn("Token missing expiration timestamp")
		return "", "", apperrors.Authentication("Invalid authentication token")
	}

	if time.Now().Unix() > p.ExpiresAt {
		logger.Warn("Token expired", logger.Time("expired_at", time.Unix(p.ExpiresAt, 0)))
		return "", "", apperrors.Authentication("Invalid authentication token")
	}

	if p.APIKey == "" || p.APISecret == "" {
		logger.Warn("Token payload missing credentials")
		return "", "", apperrors.Authentication("Invalid authentication token")
	}

	return p.APIKey, p.APISecret, nil
}
