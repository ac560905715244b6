// Package context carries the request scope (request id and child logger) from the HTTP
// middleware down to the use cases and the persistence layer.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the header a caller may use to supply its own request id.
const HeaderXRequestID = "X-Request-Id"

const echoKeyRequestID = "request_id"

type scopeKey struct{}

type scope struct {
	requestID string
	logger    *slog.Logger
}

// Bind attaches the request id and its logger to c and to c's request context.
func Bind(c echo.Context, requestID string, logger *slog.Logger) {
	c.Set(echoKeyRequestID, requestID)

	ctx := context.WithValue(c.Request().Context(), scopeKey{}, scope{
		requestID: requestID,
		logger:    logger,
	})
	c.SetRequest(c.Request().WithContext(ctx))
}

// WithLogger returns a copy of ctx whose scope uses logger. An existing request id is kept.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	s := scopeFrom(ctx)
	s.logger = logger

	return context.WithValue(ctx, scopeKey{}, s)
}

// RequestID returns the id bound to c, or "" outside a bound request.
func RequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// RequestIDFromContext returns the id bound to ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// Logger returns the request logger bound to ctx, or fallback when there is none.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := scopeFrom(ctx).logger; logger != nil {
		return logger
	}

	return fallback
}

func scopeFrom(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)

	return s
}
