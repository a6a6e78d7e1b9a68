package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/pkg/token"
	"github.com/dhwani-ris/authgate/internal/utils"
)

const (
	// AuthorizationHeader is the header carrying the client token
	AuthorizationHeader = "Authorization"
	// BearerPrefix marks an encrypted bearer token
	BearerPrefix = "Bearer "
	// CredentialScheme is the downstream API key/secret scheme
	CredentialScheme = "token"
)

// TokenAuth creates the pre-routing middleware that translates encrypted
// bearer tokens into the downstream credential-pair scheme. Requests without
// a Bearer authorization header pass through untouched so the native scheme
// (or anonymous access) applies. Every decode failure aborts the request;
// an invalid token must never fall through to downstream trust.
func TokenAuth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(AuthorizationHeader)
			if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
				return next(c)
			}

			encrypted := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
			if encrypted == "" {
				return utils.UnauthorizedResponse(c, "Authentication failed")
			}

			apiKey, apiSecret, err := codec.Decode(encrypted)
			if err != nil {
				logger.Warn("Rejected bearer token",
					logger.String("path", c.Request().URL.Path),
					logger.String("client_ip", c.RealIP()))
				return utils.UnauthorizedResponse(c, "Authentication failed")
			}

			// Hand downstream handlers a derived request instead of mutating
			// the inbound one.
			req := c.Request().Clone(c.Request().Context())
			req.Header.Set(AuthorizationHeader,
				fmt.Sprintf("%s %s:%s", CredentialScheme, apiKey, apiSecret))
			c.SetRequest(req)

			return next(c)
		}
	}
}
