package energy

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger sends gorm's statement log through zerolog.
type gormLogger struct {
	logger zerolog.Logger
	level  logger.LogLevel
}

// NewGormLogger returns a gorm logger writing to l. Statements are traced only
// when l is at debug level or below.
func NewGormLogger(l zerolog.Logger) logger.Interface {
	level := logger.Silent
	if l.GetLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	return &gormLogger{
		logger: l.With().Str("component", "gorm").Logger(),
		level:  level,
	}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Info {
		g.logger.Info().Msgf(msg, args...)
	}
}

func (g *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Warn {
		g.logger.Warn().Msgf(msg, args...)
	}
}

func (g *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Error {
		g.logger.Error().Msgf(msg, args...)
	}
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}

	took := time.Since(begin)
	switch {
	case err != nil && g.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("took", took).Msg("statement failed")
	case took > slowQueryThreshold && g.level >= logger.Warn:
		sql, rows := fc()
		g.logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("took", took).Msg("slow statement")
	case g.level >= logger.Info:
		sql, rows := fc()
		g.logger.Debug().Str("sql", sql).Int64("rows", rows).Dur("took", took).Msg("statement")
	}
}
