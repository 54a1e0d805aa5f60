// Package config loads service configuration from file, environment and
// defaults. The defaults reproduce the shipped container launch command:
// bind 0.0.0.0:8000 and run 4 workers against the converter application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
	Image   ImageConfig   `mapstructure:"image"`
}

// ServerConfig holds the launch parameters for the worker group.
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Workers int    `mapstructure:"workers"`
	App     string `mapstructure:"app"`
}

// MetricsConfig controls the optional /metrics route and worker resource
// sampling. Disabled by default so the default HTTP surface stays identical
// to the bare converter.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Addr is the supervisor's admin listener for scraping its own
	// collectors (worker lifecycle, sampled resources). Workers serve
	// their request counters in-app on the shared port.
	Addr           string        `mapstructure:"addr"`
	SampleInterval time.Duration `mapstructure:"sample_interval"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ImageConfig names the image produced by the build command.
type ImageConfig struct {
	Name string `mapstructure:"name"`
}

// Load reads configuration from the optional file path, B32D_* environment
// variables, and built-in defaults, in that order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.workers", 4)
	v.SetDefault("server.app", "converter")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "127.0.0.1:9091")
	v.SetDefault("metrics.sample_interval", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("image.name", "b32d:latest")

	v.SetEnvPrefix("B32D")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("b32d")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/b32d")
		// Missing config file is fine; defaults and env cover everything.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the launch parameters.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be in [1,65535]", c.Server.Port)
	}
	if c.Server.Workers < 1 {
		return fmt.Errorf("invalid worker count %d: must be positive", c.Server.Workers)
	}
	if c.Server.App == "" {
		return fmt.Errorf("application name must not be empty")
	}
	return nil
}

// Addr returns the host:port bind address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
