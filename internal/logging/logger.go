// Package logging wraps the process-wide charm logger with the color and
// file-sink policy from config.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/apocalyptech/wldata/internal/config"
)

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

// Logger provides leveled, optionally colored logging with an optional
// append-to-file sink. Call Close when done if a log file was configured.
type Logger struct {
	cl   *charm.Logger
	file *os.File
}

// New builds a Logger from the configured color mode, verbosity, and log
// file path.
func New(cfg *config.Config) (*Logger, error) {
	l := &Logger{}

	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		w = io.MultiWriter(os.Stderr, f)
	}

	cl := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	switch cfg.ColorMode {
	case config.ColorAlways:
		cl.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		cl.SetColorProfile(termenv.Ascii)
	}
	if cfg.Verbose {
		cl.SetLevel(charm.DebugLevel)
	}

	l.cl = cl
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.cl.Infof(format, args...)
}

// Success logs a green INFO line for completed milestones.
func (l *Logger) Success(format string, args ...interface{}) {
	l.cl.Info(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.cl.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.cl.Errorf(format, args...)
}

// Debug logs at DEBUG level; silent unless verbose was configured.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.cl.Debugf(format, args...)
}
