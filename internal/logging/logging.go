// Package logging builds the leveled diagnostic logger used by task-cli.
//
// Diagnostics go to stderr through charmbracelet/log so that command output
// on stdout stays clean for scripts.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Default values.
const (
	DefaultLevel  = "warn"
	DefaultFormat = "text"
	DefaultPrefix = "task-cli"
)

// Options holds configuration for the diagnostic logger.
type Options struct {
	Level           string
	Format          string
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for diagnostic logging.
func DefaultOptions() Options {
	return Options{
		Level:  DefaultLevel,
		Format: DefaultFormat,
		Prefix: DefaultPrefix,
	}
}

// ParseLevel converts a level name (debug, info, warn, error, fatal).
func ParseLevel(level string) (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error, fatal", level)
	}
	return lvl, nil
}

// ParseFormat converts a format name (text, json, logfmt).
func ParseFormat(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("invalid log format %q: must be one of text, json, logfmt", format)
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	}), nil
}
