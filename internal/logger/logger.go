// Package logger wraps logrus for the consolidation pipeline.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"content-migrator/internal/diagnostic"
)

// Logger is a wrapper around logrus.Logger
type Logger struct {
	*logrus.Logger
}

// New creates a new logger writing to stdout
func New() *Logger {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput creates a new logger writing to w
func NewWithOutput(w io.Writer) *Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(logrus.InfoLevel)

	return &Logger{Logger: log}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level string) {
	switch level {
	case "debug":
		l.Logger.SetLevel(logrus.DebugLevel)
	case "info":
		l.Logger.SetLevel(logrus.InfoLevel)
	case "warn":
		l.Logger.SetLevel(logrus.WarnLevel)
	case "error":
		l.Logger.SetLevel(logrus.ErrorLevel)
	default:
		l.Logger.SetLevel(logrus.InfoLevel)
	}
}

// Diagnostics logs every diagnostic at the matching level
func (l *Logger) Diagnostics(d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		entry := l.WithFields(logrus.Fields{
			"code": diag.Code,
		})

		if diag.Model != "" {
			entry = entry.WithField("model", diag.Model)
		}

		if diag.Path != "" {
			entry = entry.WithField("path", diag.Path)
		}

		switch diag.Severity {
		case diagnostic.DiagnosticError:
			entry.Error(diag.Message)
		case diagnostic.DiagnosticWarning:
			entry.Warn(diag.Message)
		default:
			entry.Debug(diag.Message)
		}
	}
}

// Dump logs a deep dump of v at debug level
func (l *Logger) Dump(label string, v any) {
	if !l.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	l.Debugf("%s:\n%s", label, spew.Sdump(v))
}
