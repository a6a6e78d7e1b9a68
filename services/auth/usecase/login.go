package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/services/auth"
)

// Login authenticates a username/password pair, enforces the mobile role
// gate, ensures an API credential pair exists, and mints an encrypted bearer
// token. The rate limit is checked before the authenticator runs.
func (u *AuthUC) Login(ctx context.Context, username, password, clientKey string) (*models.LoginResponse, error) {
	if err := u.limiter.Allow(ctx, "login", clientKey, loginRateLimit, loginRateWindow); err != nil {
		return nil, err
	}

	if username == "" || password == "" {
		return nil, apperrors.Validation("Username and password are required")
	}

	user, err := u.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if !user.HasRole(MobileUserRoles...) {
		logger.Warn("Login rejected: user lacks mobile role", logger.String("username", username))
		return nil, apperrors.Permission("Not allowed to use mobile app")
	}

	resp, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("Mobile login succeeded",
		logger.String("username", username),
		logger.String("user_id", user.ID.String()))

	resp.Message = "Logged In"
	return resp, nil
}

// Logout revokes the current user's API credential pair so previously issued
// tokens no longer decode to live credentials.
func (u *AuthUC) Logout(ctx context.Context, user *models.User) (*models.LogoutResponse, error) {
	if user == nil {
		return nil, apperrors.Authentication("Authentication failed")
	}

	if err := u.userRepo.ClearAPICredentials(ctx, user.ID.String()); err != nil {
		logger.Error("Mobile logout failed",
			logger.String("user_id", user.ID.String()),
			logger.Err(err))
		return nil, apperrors.Internal("Unable to logout", err)
	}

	logger.Info("Mobile logout succeeded", logger.String("user_id", user.ID.String()))
	return &models.LogoutResponse{Message: "Logged out successfully"}, nil
}

// authenticate validates the password against the stored hash. An unknown
// user and a wrong password produce the same failure.
func (u *AuthUC) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.Authentication("Invalid username or password")
		}
		logger.Error("Mobile login error", logger.String("username", username), logger.Err(err))
		return nil, apperrors.Internal("Unable to login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login rejected: bad password", logger.String("username", username))
		return nil, apperrors.Authentication("Invalid username or password")
	}

	return user, nil
}

// issueToken ensures a credential pair exists and encodes it into a token.
// Shared by the password and OTP login flows.
func (u *AuthUC) issueToken(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	apiKey, apiSecret, err := u.ensureCredentials(ctx, user)
	if err != nil {
		logger.Error("Failed to ensure api credentials",
			logger.String("user_id", user.ID.String()),
			logger.Err(err))
		return nil, apperrors.Internal("Unable to login", err)
	}

	tok, err := u.codec.Encode(apiKey, apiSecret, u.codec.DefaultTTL())
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		User:     user.Username,
		FullName: user.FullName,
		Token:    tok,
	}, nil
}
