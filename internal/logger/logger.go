package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a Logger.
type Options struct {
	Level    string
	Format   string // console or json
	FilePath string
	NoColor  bool
}

type implLogger struct {
	logger zerolog.Logger
	level  zerolog.Level
	file   *os.File
}

// New creates a console Logger at the given level.
func New(level string) Logger {
	l, _ := NewWithOptions(Options{Level: level})
	return l
}

// NewWithOptions creates a Logger that writes to stdout and, when FilePath is
// set, also appends JSON lines to that file.
func NewWithOptions(opts Options) (Logger, error) {
	level := parseLevel(opts.Level)

	var console io.Writer = os.Stdout
	if strings.ToLower(strings.TrimSpace(opts.Format)) != "json" {
		console = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			NoColor:    opts.NoColor,
			TimeFormat: time.DateTime,
		}
	}

	l := &implLogger{level: level}
	out := console
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return New(opts.Level), fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return New(opts.Level), fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		out = zerolog.MultiLevelWriter(console, f)
	}

	l.logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return l, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &implLogger{logger: zerolog.Nop(), level: zerolog.Disabled}
}

// Close releases the log file if one was opened.
func Close(l Logger) error {
	if impl, ok := l.(*implLogger); ok && impl.file != nil {
		return impl.file.Close()
	}
	return nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel // default to info
	}
}

func (l *implLogger) shouldLog(level zerolog.Level) bool {
	return l.level != zerolog.Disabled && level >= l.level
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if !l.shouldLog(zerolog.DebugLevel) {
		return
	}
	l.logger.Debug().Msgf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if !l.shouldLog(zerolog.InfoLevel) {
		return
	}
	l.logger.Info().Msgf(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if !l.shouldLog(zerolog.WarnLevel) {
		return
	}
	l.logger.Warn().Msgf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if !l.shouldLog(zerolog.ErrorLevel) {
		return
	}
	l.logger.Error().Msgf(msg, args...)
}
