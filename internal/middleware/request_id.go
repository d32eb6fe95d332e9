package middleware

import (
	"github.com/MGabeD/chrysus/internal/handlers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceIDHeader carries the trace ID between the renderer and the
// facade. An incoming value is propagated unchanged so the renderer can
// correlate its own logs with facade error responses.
const TraceIDHeader = "X-Trace-ID"

// RequestID tags every request with a trace ID, stored under the
// handlers context key so error responses can echo it back, and mirrors
// it into the response header. Requests without one get a fresh UUID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(handlers.TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}
