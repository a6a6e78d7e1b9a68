package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/internal/utils"
)

// CredentialValidator resolves an API credential pair to its owning user
type CredentialValidator interface {
	ValidateAPICredentials(ctx context.Context, apiKey, apiSecret string) (*models.User, error)
}

// CredentialAuth authenticates requests carrying the downstream
// `token <key>:<secret>` scheme, either sent natively by a client or rewritten
// from an encrypted bearer token by TokenAuth. The resolved user is stored in
// the echo context under "user" and "user_id".
func CredentialAuth(validator CredentialValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(AuthorizationHeader)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != CredentialScheme {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			creds := strings.SplitN(parts[1], ":", 2)
			if len(creds) != 2 || creds[0] == "" || creds[1] == "" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			user, err := validator.ValidateAPICredentials(c.Request().Context(), creds[0], creds[1])
			if err != nil {
				return utils.UnauthorizedResponse(c, "Authentication failed")
			}

			c.Set("user", user)
			c.Set("user_id", user.ID.String())

			return next(c)
		}
	}
}

// CurrentUser extracts the authenticated user from the echo context
func CurrentUser(c echo.Context) *models.User {
	if user, ok := c.Get("user").(*models.User); ok {
		return user
	}
	return nil
}
