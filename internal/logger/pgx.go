package logger

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PgxTracer routes pgx query tracing into log. level uses the pgx names
// (trace, debug, info, warn, error, none); unknown values fall back to warn.
func PgxTracer(log *zap.Logger, level string) *tracelog.TraceLog {
	lvl, err := tracelog.LogLevelFromString(level)
	if err != nil {
		lvl = tracelog.LogLevelWarn
	}
	named := log.Named("pgx")
	return &tracelog.TraceLog{
		Logger: tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
			fields := make([]zap.Field, 0, len(data))
			for k, v := range data {
				fields = append(fields, zap.Any(k, v))
			}
			FromContext(ctx, named).Log(pgxLevel(level), msg, fields...)
		}),
		LogLevel: lvl,
	}
}

func pgxLevel(level tracelog.LogLevel) zapcore.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return zapcore.DebugLevel
	case tracelog.LogLevelInfo:
		return zapcore.InfoLevel
	case tracelog.LogLevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
