package config

import (
	"github.com/nibzard/task-cli/internal/logging"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultTasksFile = "tasks.json"
	DefaultLogLevel  = logging.DefaultLevel
	DefaultLogFormat = logging.DefaultFormat
)

// Config holds the full configuration for task-cli.
type Config struct {
	// Task store file (relative paths resolve against WorkDir)
	TasksFile string `toml:"tasks_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Explicit config file given with --config (not persisted)
	ConfigFile string `toml:"-"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// LogOptions returns the logger options described by the config.
func (c *Config) LogOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.ReportTimestamp = c.LogTimestamps
	opts.ReportCaller = c.LogCaller
	return opts
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"tasks_file",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// Value returns the string form of a tracked field, for display.
func (c *Config) Value(field string) string {
	switch field {
	case "tasks_file":
		return c.TasksFile
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return boolString(c.LogTimestamps)
	case "log_caller":
		return boolString(c.LogCaller)
	}
	return ""
}

// Fields returns the tracked field names in display order.
func Fields() []string {
	return configFields()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
