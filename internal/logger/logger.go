package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type implLogger struct {
	logger *zap.SugaredLogger
	level  zapcore.Level
}

// New creates a Logger writing to stdout in text format
func New(level string) Logger {
	return NewWithWriter(level, "text", os.Stdout)
}

// NewWithWriter creates a Logger with the given format ("text" or "json")
func NewWithWriter(level, format string, w io.Writer) Logger {
	lvl := parseLevel(level)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")

	var enc zapcore.Encoder
	if strings.ToLower(format) == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return &implLogger{
		logger: zap.New(core).Sugar(),
		level:  lvl,
	}
}

// parseLevel defaults to info for unknown levels
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *implLogger) shouldLog(level string) bool {
	target, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return true
	}
	return l.level.Enabled(target)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...any) {
	if l.shouldLog("debug") {
		l.logger.Debugf(msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.shouldLog("info") {
		l.logger.Infof(msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.shouldLog("warn") {
		l.logger.Warnf(msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.shouldLog("error") {
		l.logger.Errorf(msg, args...)
	}
}

// Sync flushes buffered entries; call before exit
func Sync(l Logger) error {
	if impl, ok := l.(*implLogger); ok {
		return impl.logger.Sync()
	}
	return nil
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return &implLogger{
		logger: zap.NewNop().Sugar(),
		level:  zapcore.FatalLevel,
	}
}
