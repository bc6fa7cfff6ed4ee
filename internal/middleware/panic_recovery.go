package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"cashflow-api/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts panics in downstream handlers into a coded 500
// response instead of tearing down the connection
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				slog.Error("panic recovered",
					"trace_id", traceID,
					"panic", r,
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"stack", string(debug.Stack()))

				response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if err := c.JSON(http.StatusInternalServerError, response); err != nil {
					slog.Error("failed to write panic response",
						"trace_id", traceID,
						"error", err)
				}
			}()

			return next(c)
		}
	}
}
