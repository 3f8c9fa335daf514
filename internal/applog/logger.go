// Package applog mirrors this codebase's pkg/logger: a slog.Logger
// backed by a rotation-capable writer, configurable once at process
// start.
package applog

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger. It defaults to an info-level text
// logger on stderr until Init or InitWithConfig is called.
var Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Config mirrors pkg/logger.Config. The module's configuration sets only
// Level, Format and Output; when Output is neither "stdout" nor "stderr"
// it is the log file path, and FilePath is not read.
type Config struct {
	Level      string
	Format     string // "json" or "text"
	Output     string // "stdout", "stderr", or a file path
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Init configures Log at the given level, writing text to stderr.
func Init(level string) {
	InitWithConfig(Config{Level: level, Format: "text", Output: "stderr"})
}

// InitWithConfig configures Log per cfg.
func InitWithConfig(cfg Config) {
	var w io.Writer
	switch {
	case cfg.Output == "stdout":
		w = os.Stdout
	case cfg.Output == "stderr" || cfg.Output == "":
		w = os.Stderr
	default:
		w = &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    orDefault(cfg.MaxSize, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAge, 28),
			Compress:   cfg.Compress,
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	Log = slog.New(handler)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
