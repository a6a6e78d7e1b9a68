package http

import (
	stdhttp "net/http"

	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/middleware"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/internal/utils"
	"github.com/dhwani-ris/authgate/services/auth"
)

// AuthHandler handles the authentication HTTP endpoints
type AuthHandler struct {
	authUC auth.UseCase
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authUC auth.UseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login handles mobile app password login
func (h *AuthHandler) Login(c echo.Context) error {
	var request models.LoginRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	response, err := h.authUC.Login(c.Request().Context(), request.Username, request.Password, c.RealIP())
	if err != nil {
		return utils.WriteError(c, err, "Unable to login")
	}

	return c.JSON(stdhttp.StatusOK, response)
}

// Logout revokes the credentials of the authenticated user
func (h *AuthHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.UnauthorizedResponse(c, "Authentication failed")
	}

	response, err := h.authUC.Logout(c.Request().Context(), user)
	if err != nil {
		return utils.WriteError(c, err, "Unable to logout")
	}

	return c.JSON(stdhttp.StatusOK, response)
}

// SendOTP handles the OTP dispatch step of the OTP login flow
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var request models.OTPSendRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if request.MobileNo == "" {
		return utils.BadRequestResponse(c, "mobile_no is required")
	}

	response, err := h.authUC.SendOTP(c.Request().Context(), request.MobileNo)
	if err != nil {
		return utils.WriteError(c, err, "Failed to send OTP, please try again later")
	}

	return c.JSON(stdhttp.StatusOK, response)
}

// VerifyOTP handles the verification step of the OTP login flow
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var request models.OTPVerifyRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if request.TmpID == "" || request.OTP == "" {
		return utils.BadRequestResponse(c, "tmp_id and otp are required")
	}

	response, err := h.authUC.VerifyOTP(c.Request().Context(), request.TmpID, request.OTP)
	if err != nil {
		return utils.WriteError(c, err, "Unable to login")
	}

	return c.JSON(stdhttp.StatusOK, response)
}
