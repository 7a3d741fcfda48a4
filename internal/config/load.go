package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/nibzard/task-cli/internal/logging"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.task-cli/task-cli.toml or OS-specific config dir)
// 3. Project config file (task-cli.toml or .task-cli.toml in the working directory),
// or the --config file
// 4. Environment variables
// 5. CLI flags already parsed into fs
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := load(fs, nil)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *pflag.FlagSet) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}
	cfg, err := load(fs, sources)
	if err != nil {
		return nil, err
	}
	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
	}, nil
}

func load(fs *pflag.FlagSet, sources map[string]ConfigSource) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.WorkDir = wd

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Explicit --config file, or the project config file (overrides user config)
	if explicit := configFileFlag(fs); explicit != "" {
		cfg.ConfigFile = resolvePath(explicit, cfg.WorkDir)
		if err := loadConfigFile(cfg, cfg.ConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", cfg.ConfigFile, err)
		}
	} else if projectConfigFile := findProjectConfigFile(cfg.WorkDir); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. Explicit CLI flags override everything
	if err := applyFlags(cfg, fs, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile decodes TOML config from path into cfg.
// Keys present in the file are recorded in sources when it is non-nil.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if sources != nil {
		for _, field := range configFields() {
			if md.IsDefined(field) {
				sources[field] = source
			}
		}
	}
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.TasksFile) == "" {
		return fmt.Errorf("tasks file path is empty")
	}
	cfg.TasksFile = resolvePath(cfg.TasksFile, cfg.WorkDir)

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(cfg.LogFormat); err != nil {
		return err
	}
	return nil
}
