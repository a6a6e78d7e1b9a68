package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorMessage,
		Code:    statusCode,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// ForbiddenResponse sends a 403 Forbidden response
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Forbidden"
	}
	return ErrorResponseHandler(c, http.StatusForbidden, errorMessage)
}

// statusForKind maps an error kind to its HTTP status code
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized
	case apperrors.KindPermission:
		return http.StatusForbidden
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindRateLimit:
		return http.StatusTooManyRequests
	case apperrors.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError sends the response for a tagged application error. Untagged
// errors fall back to a generic 500 with the given message.
func WriteError(c echo.Context, err error, fallback string) error {
	kind := apperrors.KindOf(err)
	return ErrorResponseHandler(c, statusForKind(kind), apperrors.MessageOf(err, fallback))
}
