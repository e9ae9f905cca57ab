package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.Manifest.Path)
	assert.Empty(t, cfg.Manifest.VersionKey)
	assert.Equal(t, "v", cfg.Git.TagPrefix)
	assert.True(t, cfg.Git.RequireClean)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
}

func TestValidate_NormalizesBadValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "chatty", Format: "xml"},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
}

func TestValidate_KeepsGoodValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "debug", Format: "json"},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestSetDefaults_Unmarshal(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, DefaultTagPrefix, cfg.Git.TagPrefix)
	assert.True(t, cfg.Git.RequireClean)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
}

func TestConfigFile_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	yamlContent := `
manifest:
  path: pyproject.toml
  version_key: tool.poetry.version
git:
  tag_prefix: release-
  require_clean: false
logging:
  level: debug
`
	require.NoError(t, v.ReadConfig(strings.NewReader(yamlContent)))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "pyproject.toml", cfg.Manifest.Path)
	assert.Equal(t, "tool.poetry.version", cfg.Manifest.VersionKey)
	assert.Equal(t, "release-", cfg.Git.TagPrefix)
	assert.False(t, cfg.Git.RequireClean)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverride(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DEVKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	t.Setenv("DEVKIT_GIT_TAG_PREFIX", "ver-")

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "ver-", cfg.Git.TagPrefix)
}

func TestConfigFilePath(t *testing.T) {
	assert.True(t, strings.HasSuffix(ConfigFilePath(), "config.yaml"))
	assert.Contains(t, ConfigFilePath(), ".devkit")
}
