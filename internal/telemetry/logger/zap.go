package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLevel mirrors globalLevel for zap cores.
var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

type zapLogger struct {
	s   *zap.SugaredLogger
	ctx context.Context
}

func newZap(cfg Config, output io.Writer) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(output), zapLevel)

	var opts []zap.Option
	if cfg.AddSource {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &zapLogger{
		s:   zap.New(core, opts...).Sugar(),
		ctx: context.Background(),
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar(), ctx: context.Background()}
}

func (l *zapLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l *zapLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l *zapLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l *zapLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(args...), ctx: l.ctx}
}

func (l *zapLogger) WithContext(ctx context.Context) Logger {
	return &zapLogger{s: l.s, ctx: ctx}
}

func (l *zapLogger) Sync() error {
	return l.s.Sync()
}

func toZapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
