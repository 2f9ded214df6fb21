package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the application logger interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Backend names accepted by Config.Backend.
const (
	BackendZap  = "zap"
	BackendSlog = "slog"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Format is the output format (json, text).
	Format string
	// Backend selects the implementation (zap, slog). Empty means slog.
	Backend string
	// Output is the output writer (defaults to os.Stderr).
	Output io.Writer
	// AddSource adds source file information to log entries.
	AddSource bool
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Backend:   BackendZap,
		Output:    os.Stderr,
		AddSource: false,
	}
}

// slogLogger wraps slog.Logger with additional functionality.
type slogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

// globalLevel holds the current log level for dynamic adjustment.
// The zap backend mirrors it in zapLevel.
var globalLevel = new(slog.LevelVar)

// ErrUnknownBackend is returned by New for an unsupported Config.Backend.
var ErrUnknownBackend = errors.New("logger: unknown backend")

// New creates a new logger with the given configuration.
func New(cfg Config) (Logger, error) {
	setLevels(cfg.Level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	switch strings.ToLower(cfg.Backend) {
	case BackendZap:
		return newZap(cfg, output), nil
	case "", BackendSlog:
		return newSlog(cfg, output), nil
	default:
		return nil, ErrUnknownBackend
	}
}

func newSlog(cfg Config, output io.Writer) Logger {
	opts := &slog.HandlerOptions{
		Level:     globalLevel,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		handler = slog.NewTextHandler(output, opts)
	default: // json
		handler = slog.NewJSONHandler(output, opts)
	}

	return &slogLogger{
		logger: slog.New(handler),
		ctx:    context.Background(),
	}
}

// SetLevel dynamically sets the global log level for every backend.
// The config watcher calls it when log.level changes on disk.
func SetLevel(level string) {
	setLevels(level)
}

func setLevels(level string) {
	l := parseLevel(level)
	globalLevel.Set(l)
	zapLevel.SetLevel(toZapLevel(l))
}

// GetLevel returns the current log level as a string.
func GetLevel() string {
	switch globalLevel.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelInfo:
		return "info"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	default:
		return "info"
	}
}

// ValidLevel reports whether level is one SetLevel understands.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.DebugContext(l.ctx, msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.InfoContext(l.ctx, msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.WarnContext(l.ctx, msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.ErrorContext(l.ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{
		logger: l.logger.With(args...),
		ctx:    l.ctx,
	}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return &slogLogger{
		logger: l.logger,
		ctx:    ctx,
	}
}

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Sync flushes buffered entries if the logger buffers any.
func Sync(l Logger) error {
	if s, ok := l.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// holder lets atomic.Pointer carry any Logger implementation.
type holder struct{ Logger }

// Global logger instance for convenience methods.
var defaultLogger atomic.Pointer[holder]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&holder{l})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&holder{l})
	}
}

// Default returns the default global logger.
func Default() Logger {
	return defaultLogger.Load().Logger
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}
