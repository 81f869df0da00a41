package negsamp

import (
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/negsamp/pool"
)

// Logger wraps slog.Logger with negsamp-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPhase adds a phase field to the logger.
func (l *Logger) WithPhase(phase string) *Logger {
	return &Logger{
		Logger: l.Logger.With("phase", phase),
	}
}

// WithDistribution adds a distribution field to the logger.
func (l *Logger) WithDistribution(d pool.Distribution) *Logger {
	return &Logger{
		Logger: l.Logger.With("distribution", string(d)),
	}
}

// WithKeys adds a key-count field to the logger.
func (l *Logger) WithKeys(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("keys", count),
	}
}

// LogBuild logs sampler construction.
func (l *Logger) LogBuild(records int, duration time.Duration, err error) {
	if err != nil {
		l.Error("sampler build failed",
			"records", records,
			"error", err,
		)
	} else {
		l.Info("sampler build completed",
			"records", records,
			"duration", duration,
		)
	}
}

// LogSample logs a sampling operation.
func (l *Logger) LogSample(keys, num, rounds int, err error) {
	if err != nil {
		l.Error("sample failed",
			"keys", keys,
			"num", num,
			"error", err,
		)
	} else {
		l.Debug("sample completed",
			"keys", keys,
			"num", num,
			"draw_rounds", rounds,
		)
	}
}
