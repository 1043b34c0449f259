// Package config holds the demo's configuration, loaded through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/xraph/strata/logsink"
)

// Config is the demo configuration.
type Config struct {
	// Locale is the process-wide locale used by the application context.
	Locale string `mapstructure:"locale"`
	// ScreenLocale overrides the locale of screen contexts. Empty inherits Locale.
	ScreenLocale string `mapstructure:"screen_locale"`
	// ResourcesDir loads string bundles from disk instead of the embedded ones.
	ResourcesDir string         `mapstructure:"resources_dir"`
	Log          logsink.Config `mapstructure:"log"`
	Metrics      MetricsConfig  `mapstructure:"metrics"`
}

// MetricsConfig controls the prometheus middleware.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Defaults returns the configuration used when no file or flag overrides it.
func Defaults() Config {
	return Config{
		Locale: "en",
		Log: logsink.Config{
			Level:  "debug",
			Format: "console",
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("locale", d.Locale)
	v.SetDefault("screen_locale", d.ScreenLocale)
	v.SetDefault("resources_dir", d.ResourcesDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}

// Load reads the config file into v and unmarshals the result. With an
// empty path it looks for .strata/config.yaml, then
// ~/.config/strata/config.yaml; a missing file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("STRATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if _, err := os.Stat(filepath.Join(".strata", "config.yaml")); err == nil {
			v.SetConfigFile(filepath.Join(".strata", "config.yaml"))
		} else {
			if home, err := os.UserHomeDir(); err == nil {
				v.AddConfigPath(filepath.Join(home, ".config", "strata"))
			}
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// EffectiveScreenLocale returns the locale screen contexts use.
func (c Config) EffectiveScreenLocale() string {
	if c.ScreenLocale != "" {
		return c.ScreenLocale
	}
	return c.Locale
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}

	if c.ResourcesDir != "" {
		info, err := os.Stat(c.ResourcesDir)
		if err != nil {
			return fmt.Errorf("resources_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("resources_dir %s is not a directory", c.ResourcesDir)
		}
	}

	return nil
}
