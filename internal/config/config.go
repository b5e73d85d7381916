// Package config holds the svgfit configuration, loaded through viper from
// defaults, an optional YAML file and SVGFIT_ environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the whole application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer" yaml:"analyzer"`
	// Fit gets its marching orders from CLI flags, not the config file.
	Fit FitConfig `mapstructure:"-" yaml:"-"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// AnalyzerConfig tunes the bounds engine.
type AnalyzerConfig struct {
	// Buffer is the padding in user units added around the computed
	// envelope before it becomes the viewBox.
	Buffer float64 `mapstructure:"buffer" yaml:"buffer"`
	// Parallelism bounds concurrent per-element analysis.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
	// Precision is the number of decimals kept when formatting the viewBox.
	Precision int `mapstructure:"precision" yaml:"precision"`
}

// FitConfig holds per-invocation settings populated from CLI flags.
type FitConfig struct {
	Input  string
	Output string
	DryRun bool
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "svgfit")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	v.SetDefault("analyzer.buffer", 10.0)
	v.SetDefault("analyzer.parallelism", 4)
	v.SetDefault("analyzer.precision", 3)
}

// NewDefaultConfig returns a configuration populated with defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// Defaults always validate; anything else is a programming error.
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return cfg
}

// NewConfigFromViper unmarshals and validates a configuration.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Analyzer.Buffer < 0 {
		return fmt.Errorf("analyzer.buffer must not be negative")
	}
	if c.Analyzer.Parallelism <= 0 {
		return fmt.Errorf("analyzer.parallelism must be a positive integer")
	}
	if c.Analyzer.Precision < 0 || c.Analyzer.Precision > 10 {
		return fmt.Errorf("analyzer.precision must be between 0 and 10")
	}
	return nil
}
