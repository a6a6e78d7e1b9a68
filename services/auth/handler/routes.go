package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/middleware"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
	httpHandler "github.com/dhwani-ris/authgate/services/auth/handler/http"
)

// Handler wires the authentication endpoints into the router
type Handler struct {
	authHandler *httpHandler.AuthHandler
	validator   middleware.CredentialValidator
	cfg         *models.Config
}

// NewHandler creates the route registrar
func NewHandler(authHandler *httpHandler.AuthHandler, validator middleware.CredentialValidator, cfg *models.Config) *Handler {
	return &Handler{
		authHandler: authHandler,
		validator:   validator,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all service routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	authGroup := e.Group("/auth")

	// Guest-accessible login endpoints
	authGroup.POST("/login", h.authHandler.Login)
	authGroup.POST("/otp/send", h.authHandler.SendOTP)
	authGroup.POST("/otp/verify", h.authHandler.VerifyOTP)

	// Logout requires the downstream credential scheme, carried natively or
	// rewritten from a bearer token by the token middleware.
	authGroup.POST("/logout", h.authHandler.Logout, middleware.CredentialAuth(h.validator))
}
