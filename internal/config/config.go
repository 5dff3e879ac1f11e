// Package config loads CLI configuration from defaults, an optional config
// file, and CODEBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/goliatone/go-codebook/pkg/validation"
)

// Config collects the tunables the CLI exposes.
type Config struct {
	// SoftVariableLimit is the advisory ceiling forwarded to validation.
	SoftVariableLimit int `mapstructure:"soft_variable_limit"`
	// DefaultFormat is the render output used when --format is omitted.
	DefaultFormat string `mapstructure:"default_format"`
	// SchemaName names the schema inside generated response formats.
	SchemaName string `mapstructure:"schema_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SoftVariableLimit: validation.DefaultSoftVariableLimit,
		DefaultFormat:     "markdown",
		SchemaName:        "codebook_extraction",
	}
}

// Load resolves configuration. An explicit cfgFile must exist; otherwise a
// config.yaml is searched in the working directory and ~/.codebook, and a
// missing file simply yields the defaults.
func Load(cfgFile string) (Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetDefault("soft_variable_limit", defaults.SoftVariableLimit)
	v.SetDefault("default_format", defaults.DefaultFormat)
	v.SetDefault("schema_name", defaults.SchemaName)

	v.SetEnvPrefix("CODEBOOK")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.codebook")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
