package repository

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/services/auth"
)

const userColumns = `
	id, username, full_name, msisdn, password_hash,
	COALESCE(api_key, '') AS api_key,
	COALESCE(api_secret, '') AS api_secret,
	is_active, created_at, updated_at
`

// GetUserByUsername retrieves an active user by username
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 AND is_active`, userColumns)
	return r.getUser(ctx, query, username)
}

// GetUserByMSISDN retrieves an active user by mobile number
func (r *UserRepo) GetUserByMSISDN(ctx context.Context, msisdn string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE msisdn = $1 AND is_active`, userColumns)
	return r.getUser(ctx, query, msisdn)
}

// GetUserByID retrieves an active user by id
func (r *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND is_active`, userColumns)
	return r.getUser(ctx, query, id)
}

func (r *UserRepo) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	roles, err := r.getRoles(ctx, user.ID.String())
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

func (r *UserRepo) getRoles(ctx context.Context, userID string) ([]string, error) {
	var roles []string
	query := `SELECT role FROM user_roles WHERE user_id = $1`
	if err := r.db.SelectContext(ctx, &roles, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	return roles, nil
}

// UpdateAPICredentials stores a new API credential pair for the user.
// The write is synchronous; the caller may mint a token from the pair
// immediately after this returns.
func (r *UserRepo) UpdateAPICredentials(ctx context.Context, userID, apiKey, apiSecret string) error {
	query := `
		UPDATE users
		SET api_key = $1, api_secret = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, apiKey, apiSecret, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update api credentials: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update api credentials: %w", err)
	}
	if rows == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}

// ClearAPICredentials removes the stored credential pair for the user,
// invalidating tokens derived from it.
func (r *UserRepo) ClearAPICredentials(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET api_key = NULL, api_secret = NULL, updated_at = $1
		WHERE id = $2
	`

	if _, err := r.db.ExecContext(ctx, query, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to clear api credentials: %w", err)
	}

	return nil
}

// ValidateAPICredentials resolves an API key to its user and checks the
// secret in constant time against the stored pair.
func (r *UserRepo) ValidateAPICredentials(ctx context.Context, apiKey, apiSecret string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE api_key = $1 AND is_active`, userColumns)

	user, err := r.getUser(ctx, query, apiKey)
	if err != nil {
		return nil, err
	}

	if user.APISecret == "" ||
		subtle.ConstantTimeCompare([]byte(user.APISecret), []byte(apiSecret)) != 1 {
		return nil, auth.ErrUserNotFound
	}

	return user, nil
}
