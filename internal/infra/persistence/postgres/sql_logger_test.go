package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"member/config"
	deliverycontext "member/internal/delivery/context"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sqlFn() (string, int64) {
	return "SELECT 1", 1
}

func TestSQLLogger_Trace(t *testing.T) {
	t.Run("errors use the request scoped logger", func(t *testing.T) {
		var base, scoped bytes.Buffer
		l := newSQLLogger(slog.New(slog.NewTextHandler(&base, nil)), nil)

		reqLogger := slog.New(slog.NewTextHandler(&scoped, nil)).With(slog.String("request_id", "req-1"))
		ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

		l.Trace(ctx, time.Now(), sqlFn, errors.New("deadlock"))

		assert.Empty(t, base.String())
		assert.Contains(t, scoped.String(), "GORM query failed")
		assert.Contains(t, scoped.String(), "request_id=req-1")
		assert.Contains(t, scoped.String(), "deadlock")
	})

	t.Run("record not found is not logged", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSQLLogger(slog.New(slog.NewTextHandler(&buf, nil)), nil)

		l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSQLLogger(slog.New(slog.NewTextHandler(&buf, nil)), nil)

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("debug config logs every query", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := &config.Config{}
		cfg.Env.Debug = true
		l := newSQLLogger(slog.New(slog.NewTextHandler(&buf, nil)), cfg)

		l.Trace(context.Background(), time.Now(), sqlFn, nil)

		assert.Contains(t, buf.String(), "GORM query")
		assert.Contains(t, buf.String(), "SELECT 1")
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSQLLogger(slog.New(slog.NewTextHandler(&buf, nil)), nil).LogMode(logger.Silent)

		l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

		assert.Empty(t, buf.String())
	})

	t.Run("printf helpers respect the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSQLLogger(slog.New(slog.NewTextHandler(&buf, nil)), nil)

		l.Info(context.Background(), "opened %d connections", 4)
		assert.Empty(t, buf.String())

		l.Warn(context.Background(), "pool at %d%%", 90)
		assert.Contains(t, buf.String(), "GORM WARN")
		assert.Contains(t, buf.String(), "pool at 90%")
	})
}
