package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogPoolWait(t *testing.T) {
	prev := sql.DBStats{WaitCount: 10, WaitDuration: time.Second}

	tests := []struct {
		name      string
		cur       sql.DBStats
		wantLevel string
	}{
		{
			name:      "no new waits",
			cur:       prev,
			wantLevel: "",
		},
		{
			name:      "short waits are debug",
			cur:       sql.DBStats{WaitCount: 12, WaitDuration: time.Second + 2*time.Millisecond},
			wantLevel: "level=DEBUG",
		},
		{
			name:      "long waits warn",
			cur:       sql.DBStats{WaitCount: 11, WaitDuration: time.Second + dbPoolWarnDurationThreshold},
			wantLevel: "level=WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			logPoolWait(context.Background(), logger, prev, tt.cur)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), "Postgres pool wait")
		})
	}
}
