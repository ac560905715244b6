package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"member/config"
	deliverycontext "member/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// sqlLogger routes GORM output to slog. Statements are only logged at Info level, so a
// production config records failures and slow queries and nothing else.
type sqlLogger struct {
	base  *slog.Logger
	level logger.LogLevel
	slow  time.Duration
}

func newSQLLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &sqlLogger{base: base, level: level, slow: slowQueryThreshold}
}

func (l *sqlLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *sqlLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *sqlLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *sqlLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *sqlLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if !l.enabled(logger.Error) {
		return
	}

	elapsed := time.Since(begin)
	level, msg, extra := l.classify(elapsed, err)
	if msg == "" {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}

	l.scoped(ctx).LogAttrs(ctx, level, msg, attrs...)
}

// classify picks the record for a finished statement. An empty message means skip it.
// Missing rows are expected on login and update lookups and never count as failures.
func (l *sqlLogger) classify(elapsed time.Duration, err error) (slog.Level, string, slog.Attr) {
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return slog.LevelError, "GORM query failed", slog.String("error", err.Error())
	case l.slow > 0 && elapsed > l.slow && l.enabled(logger.Warn):
		return slog.LevelWarn, "GORM slow query", slog.Duration("slowThreshold", l.slow)
	case l.enabled(logger.Info):
		return slog.LevelInfo, "GORM query", slog.Attr{}
	default:
		return slog.LevelInfo, "", slog.Attr{}
	}
}

func (l *sqlLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if !l.enabled(threshold) {
		return
	}

	l.scoped(ctx).LogAttrs(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *sqlLogger) enabled(threshold logger.LogLevel) bool {
	return l.base != nil && l.level >= threshold
}

// scoped prefers the request logger so SQL lines carry the request id.
func (l *sqlLogger) scoped(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, l.base)
}
