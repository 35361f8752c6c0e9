// Package logging builds the structured loggers used across jazz.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/silbinarywolf/toy-jazz/internal/config"
)

// New returns a logger writing to w with the configured level and format.
func New(w io.Writer, cfg config.Log) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}
	var formatter log.Formatter
	switch cfg.Format {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "jazz",
		Level:           level,
		Formatter:       formatter,
	}), nil
}

// Default returns the logger used before any configuration is loaded.
func Default() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jazz",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
