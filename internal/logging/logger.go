package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tasnim.dev/iam-audit/internal/utils"
)

const service = "iam-audit"

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewConsole returns a JSON logger writing to stderr.
func NewConsole(level, component string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	config.Encoding = "json"
	config.InitialFields = map[string]interface{}{
		"component": component,
		"service":   service,
	}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewDevelopment()
	}
	return logger
}

// ErrorFileName returns the daily error log name, e.g. "25-06-20-error.log".
func ErrorFileName(t time.Time) string {
	return t.Format(utils.ShortDate) + "-error.log"
}

// NewErrorFile returns a logger that appends error-level entries to the
// daily error log in dir. Lines look like "2025-06-20 10:00:00,ERROR,msg {...}".
// The returned close func flushes and closes the file.
func NewErrorFile(dir string, now time.Time) (*zap.Logger, func() error, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, ErrorFileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening error log: %w", err)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout(utils.DateTimeSec),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ",",
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zapcore.ErrorLevel)
	logger := zap.New(core)

	closeFn := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeFn, nil
}
