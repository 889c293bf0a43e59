// Package config provides Viper-based configuration management for webp
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the complete webp configuration
type Config struct {
	Tools    ToolsConfig    `mapstructure:"tools"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
}

// ToolsConfig names the external binaries the converter shells out to
type ToolsConfig struct {
	Exiftool string `mapstructure:"exiftool"`
	FFmpeg   string `mapstructure:"ffmpeg"`
}

// DefaultsConfig contains conversion defaults applied when the
// corresponding key=value argument is not given
type DefaultsConfig struct {
	Quality     int  `mapstructure:"quality"`
	Compression int  `mapstructure:"compression"`
	Lossless    bool `mapstructure:"lossless"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set config file if specified
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search paths for .webp.yaml
		v.SetConfigName(".webp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/webp")
	}

	// Environment variables
	v.SetEnvPrefix("WEBP")
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	// Tool binaries are resolved through PATH unless overridden
	v.SetDefault("tools.exiftool", "exiftool")
	v.SetDefault("tools.ffmpeg", "ffmpeg")

	// Conversion defaults
	v.SetDefault("defaults.quality", 75)
	v.SetDefault("defaults.compression", 6)
	v.SetDefault("defaults.lossless", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Output defaults
	v.SetDefault("output.colors", true)
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.Tools.Exiftool == "" {
		return fmt.Errorf("tools.exiftool must not be empty")
	}
	if cfg.Tools.FFmpeg == "" {
		return fmt.Errorf("tools.ffmpeg must not be empty")
	}

	if cfg.Defaults.Quality < 0 || cfg.Defaults.Quality > 100 {
		return fmt.Errorf("invalid default quality %d: must be between 0 and 100", cfg.Defaults.Quality)
	}
	if cfg.Defaults.Compression < 0 || cfg.Defaults.Compression > 6 {
		return fmt.Errorf("invalid default compression %d: must be between 0 and 6", cfg.Defaults.Compression)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	return nil
}
