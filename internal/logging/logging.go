// Package logging builds the logrus logger shared by every accessblock component.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/accessblock/internal/config"
)

// Field names used by the JSON formatter.
const (
	fieldTime     = "time"
	fieldSeverity = "severity"
	fieldMessage  = "message"

	// Component is the field identifying this service in aggregated logs.
	Component = "component"
)

// New returns a logger configured from cfg writing to stderr.
func New(cfg config.LogConfig) (*logrus.Entry, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter returns a logger configured from cfg writing to w.
func NewWithWriter(cfg config.LogConfig, w io.Writer) (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.AddHook(NewRedactHook())

	switch cfg.Format {
	case config.LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  fieldTime,
				logrus.FieldKeyLevel: fieldSeverity,
				logrus.FieldKeyMsg:   fieldMessage,
			},
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger.WithField(Component, config.AppName), nil
}

// Discard returns a logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
