package config

// Config represents the application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Git      GitConfig      `mapstructure:"git" yaml:"git"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig contains manifest lookup settings
type ManifestConfig struct {
	// Path is the manifest file to operate on; empty means auto-detect
	// in the working directory
	Path string `mapstructure:"path" yaml:"path"`

	// VersionKey is the dotted keypath of the version field; empty means
	// probe well-known locations for the manifest's filename
	VersionKey string `mapstructure:"version_key" yaml:"version_key"`
}

// GitConfig contains git integration settings
type GitConfig struct {
	TagPrefix    string `mapstructure:"tag_prefix" yaml:"tag_prefix"`
	RequireClean bool   `mapstructure:"require_clean" yaml:"require_clean"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// Validate normalizes invalid values back to defaults
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = DefaultLogLevel
	}
	switch c.Logging.Format {
	case "pretty", "json":
	default:
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
