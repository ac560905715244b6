package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"member/config"
	deliverycontext "member/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantReuse bool
	}{
		{name: "reuses caller id", header: "req-123", wantReuse: true},
		{name: "generates when missing", header: ""},
		{name: "replaces oversized id", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var ctxID string
			err := m.Process(func(c echo.Context) error {
				ctxID = deliverycontext.RequestIDFromContext(c.Request().Context())
				deliverycontext.Logger(c.Request().Context(), nil).Info("inside")

				return nil
			})(c)
			require.NoError(t, err)

			headerID := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.Equal(t, headerID, ctxID)
			assert.Equal(t, headerID, deliverycontext.RequestID(c))
			assert.Contains(t, buf.String(), "request_id="+headerID)

			if tt.wantReuse {
				assert.Equal(t, tt.header, headerID)

				return
			}
			parsed, err := uuid.Parse(headerID)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), parsed.Version())
		})
	}
}

func TestLoggerMiddleware_Handle(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		handler echo.HandlerFunc
		wantLog string
	}{
		{
			name:    "success is quiet outside debug",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		},
		{
			name:    "success is logged in debug",
			debug:   true,
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantLog: "level=INFO",
		},
		{
			name:    "client errors warn",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusBadRequest) },
			wantLog: "level=WARN",
		},
		{
			name:    "returned errors are rendered before logging",
			handler: func(echo.Context) error { return echo.NewHTTPError(http.StatusServiceUnavailable) },
			wantLog: "status=503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug
			m := NewLoggerMiddleware(slog.New(slog.NewTextHandler(&buf, nil)), cfg)

			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), httptest.NewRecorder())

			require.NoError(t, m.Handle(tt.handler)(c))

			if tt.wantLog == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), "HTTP Request")
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}
