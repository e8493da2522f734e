// Package logging builds the structured logger used by the command.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/setanarut/spritesheet/internal/config"
)

// Logger wraps a slog.Logger with an optional file sink. Call Close when done.
type Logger struct {
	*slog.Logger
	file *os.File
}

// NewLogger writes to stderr, and also appends to cfg.LogFile when set.
// Verbose enables DEBUG records.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.Config, out io.Writer) (*Logger, error) {
	l := &Logger{}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		out = io.MultiWriter(out, f)
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	l.Logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
