package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// dbLogger bridges gorm's logger.Interface onto the process-wide
// zerolog logger. gorm's own level switching is ignored, filtering
// happens through the global zerolog level.
type dbLogger struct {
	log zerolog.Logger
}

func (l *dbLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *dbLogger) Info(_ context.Context, s string, args ...interface{}) {
	l.log.Info().Msgf(s, args...)
}

func (l *dbLogger) Warn(_ context.Context, s string, args ...interface{}) {
	l.log.Warn().Msgf(s, args...)
}

func (l *dbLogger) Error(_ context.Context, s string, args ...interface{}) {
	l.log.Error().Msgf(s, args...)
}

// Trace logs every statement with its duration and row count. Missing
// records are an expected outcome, not a query error, so they stay at
// debug level with everything else.
func (l *dbLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()

	event := l.log.Debug()
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		event = l.log.Error().Err(err)
	}

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", time.Since(begin)).
		Msg("Store")
}
