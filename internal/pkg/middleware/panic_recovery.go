package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/utils"
)

// PanicRecovery creates a middleware that recovers from panics in handlers,
// logs them with a stack trace, and returns a generic 500 response.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic recovered",
						logger.String("panic", fmt.Sprintf("%v", r)),
						logger.String("method", c.Request().Method),
						logger.String("path", c.Request().URL.Path),
						logger.String("client_ip", c.RealIP()),
						logger.String("stacktrace", string(debug.Stack())))

					if !c.Response().Committed {
						_ = utils.ErrorResponseHandler(c, http.StatusInternalServerError, "Internal server error")
					}
				}
			}()

			return next(c)
		}
	}
}
