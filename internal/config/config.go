package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	appName   = "godenodo"
	envPrefix = "GODENODO"
)

type Config struct {
	Debug       bool          `mapstructure:"debug"`
	LogLevel    string        `mapstructure:"log_level"`
	LogFormat   string        `mapstructure:"log_format"`
	LogFile     string        `mapstructure:"log_file"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	UserAgent   string        `mapstructure:"user_agent"`
	Redact      bool          `mapstructure:"redact"`
	Interactive bool          `mapstructure:"interactive"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_file", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("rate_limit", 1.0)
	v.SetDefault("user_agent", "")
	v.SetDefault("redact", false)
	v.SetDefault("interactive", false)
}

// Load loads the configuration from file, environment variables and any
// flags already bound to the global viper instance.
func Load() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return LoadFrom(viper.GetViper(), filepath.Join(configDir, appName, "config.yaml"))
}

// LoadFrom loads the configuration into v from configPath. A missing file is
// not an error.
func LoadFrom(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	// Bind environment variables with GODENODO_ prefix
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if c.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.RateLimit <= 0 {
		return nil, fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	return c, nil
}
