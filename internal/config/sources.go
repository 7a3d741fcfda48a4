package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName        = "task-cli"
	configFileName = "task-cli.toml"
)

// findProjectConfigFile looks for a config file in dir.
func findProjectConfigFile(dir string) string {
	names := []string{configFileName, "." + configFileName}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.task-cli/task-cli.toml first, then falls back to OS-specific
// config directories if ~/.task-cli doesn't exist.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, "."+appName, configFileName)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, appName, configFileName)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// ConfigFiles returns the config files that contributed to the configuration,
// user file first.
func (cws *ConfigWithSources) ConfigFiles() []string {
	var files []string
	if f := findUserConfigFile(); f != "" {
		files = append(files, f)
	}
	if cws.Config.ConfigFile != "" {
		return append(files, cws.Config.ConfigFile)
	}
	if f := findProjectConfigFile(cws.Config.WorkDir); f != "" {
		files = append(files, f)
	}
	return files
}
