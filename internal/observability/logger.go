package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	sl *slog.Logger
}

// NewLogger пишет JSON-строки в файл с ротацией и дублирует в stderr.
// Пустой logPath — только stderr (удобно в тестах и в docker).
func NewLogger(logPath, logLevel string) *Logger {
	var out io.Writer = os.Stderr
	if logPath != "" {
		rotated := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, rotated)
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	})

	return &Logger{sl: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.sl.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.sl.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.sl.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.sl.Error(msg, fields...)
}
