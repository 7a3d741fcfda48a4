package config

import (
	"github.com/spf13/pflag"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig        = "config"
	FlagFile          = "file"
	FlagLogLevel      = "log-level"
	FlagLogFormat     = "log-format"
	FlagLogTimestamps = "log-timestamps"
	FlagLogCaller     = "log-caller"
)

// RegisterFlags defines the configuration flags on fs.
// Values only override lower layers when the flag is explicitly set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to a config file (replaces the project config file)")
	fs.StringP(FlagFile, "f", DefaultTasksFile, "Path to the task store file")
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level (debug|info|warn|error)")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format (text|json|logfmt)")
	fs.Bool(FlagLogTimestamps, false, "Include timestamps in log output")
	fs.Bool(FlagLogCaller, false, "Include caller location in log output")
}

// applyFlags copies explicitly set flags into cfg.
// If sources is non-nil, it tracks the source of each value.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}

	type stringBinding struct {
		flag   string
		field  string
		target *string
	}
	type boolBinding struct {
		flag   string
		field  string
		target *bool
	}

	for _, b := range []stringBinding{
		{FlagFile, "tasks_file", &cfg.TasksFile},
		{FlagLogLevel, "log_level", &cfg.LogLevel},
		{FlagLogFormat, "log_format", &cfg.LogFormat},
	} {
		if fs.Lookup(b.flag) == nil || !fs.Changed(b.flag) {
			continue
		}
		v, err := fs.GetString(b.flag)
		if err != nil {
			return err
		}
		*b.target = v
		if sources != nil {
			sources[b.field] = SourceFlag
		}
	}

	for _, b := range []boolBinding{
		{FlagLogTimestamps, "log_timestamps", &cfg.LogTimestamps},
		{FlagLogCaller, "log_caller", &cfg.LogCaller},
	} {
		if fs.Lookup(b.flag) == nil || !fs.Changed(b.flag) {
			continue
		}
		v, err := fs.GetBool(b.flag)
		if err != nil {
			return err
		}
		*b.target = v
		if sources != nil {
			sources[b.field] = SourceFlag
		}
	}

	return nil
}

// configFileFlag returns the --config value, if the flag exists.
func configFileFlag(fs *pflag.FlagSet) string {
	if fs == nil || fs.Lookup(FlagConfig) == nil {
		return ""
	}
	v, _ := fs.GetString(FlagConfig)
	return v
}
