package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	DefaultTagPrefix    = "v"
	DefaultRequireClean = true

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devkit"
	}
	return filepath.Join(home, ".devkit")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Manifest: ManifestConfig{},
		Git: GitConfig{
			TagPrefix:    DefaultTagPrefix,
			RequireClean: DefaultRequireClean,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
