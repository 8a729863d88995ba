package pixgo

import (
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/pixgo/geom"
)

// Logger wraps slog.Logger with pixgo-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithBundle adds a bundle name field to the logger.
func (l *Logger) WithBundle(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("bundle", name),
	}
}

// WithMapSize adds a map size field to the logger.
func (l *Logger) WithMapSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("map_size", size),
	}
}

// WithAngle adds a camera angle field to the logger.
func (l *Logger) WithAngle(angle float32) *Logger {
	return &Logger{
		Logger: l.Logger.With("camera_angle", angle),
	}
}

// LogLoad logs a map load operation.
func (l *Logger) LogLoad(source string, mapCount int, err error) {
	if err != nil {
		l.Error("load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.Info("load completed",
			"source", source,
			"maps", mapCount,
		)
	}
}

// LogCameraUpdate logs a camera update.
func (l *Logger) LogCameraUpdate(position geom.Vec3, height float32, err error) {
	if err != nil {
		l.Error("camera update failed",
			"error", err,
		)
	} else {
		l.Debug("camera updated",
			"position", position,
			"height", height,
		)
	}
}

// LogBuild logs a map build operation.
func (l *Logger) LogBuild(mapCount int, duration time.Duration, err error) {
	if err != nil {
		l.Error("map build failed",
			"maps_completed", mapCount,
			"error", err,
		)
	} else {
		l.Info("map build completed",
			"maps", mapCount,
			"duration", duration,
		)
	}
}

// LogPublish logs a bundle publish operation.
func (l *Logger) LogPublish(name string, err error) {
	if err != nil {
		l.Error("publish failed",
			"bundle", name,
			"error", err,
		)
	} else {
		l.Info("publish completed",
			"bundle", name,
		)
	}
}
