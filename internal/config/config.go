// Package config handles toonify configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/HartBrook/toonify/internal/convert"
	"github.com/HartBrook/toonify/internal/errors"
	"github.com/HartBrook/toonify/internal/memo"
	"github.com/HartBrook/toonify/internal/watch"
)

// EnvPrefix prefixes environment overrides, e.g. TOONIFY_FORMAT or TOONIFY_MEMO_SIZE.
const EnvPrefix = "TOONIFY"

// MemoConfig contains result cache settings.
type MemoConfig struct {
	Size int `yaml:"size" mapstructure:"size"` // 0 disables caching
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	Debounce string `yaml:"debounce" mapstructure:"debounce"` // e.g., "250ms"
}

// Config represents the toonify configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Format is the default input format: a format name, an alias, or "auto".
	Format string `yaml:"format" mapstructure:"format"`

	// Stats prints token statistics after each conversion.
	Stats bool `yaml:"stats" mapstructure:"stats"`
	Color bool `yaml:"color" mapstructure:"color"`

	Memo  MemoConfig  `yaml:"memo" mapstructure:"memo"`
	Watch WatchConfig `yaml:"watch" mapstructure:"watch"`
}

// Default values.
const (
	DefaultVersion = 1
	DefaultFormat  = string(convert.FormatAuto)

	DefaultFileMode = 0644
)

// DefaultDebounce is the default watch debounce as written in the config file.
var DefaultDebounce = watch.DefaultDebounce.String()

// Default returns a config with every field set to its default.
func Default() *Config {
	return &Config{
		Version: DefaultVersion,
		Format:  DefaultFormat,
		Stats:   true,
		Color:   true,
		Memo:    MemoConfig{Size: memo.DefaultSize},
		Watch:   WatchConfig{Debounce: DefaultDebounce},
	}
}

// Load reads config from the default location. A missing file yields defaults.
func Load() (*Config, error) {
	paths := NewPaths()
	return load(paths.ConfigFile, true)
}

// LoadFrom reads config from a specific path, which must exist.
func LoadFrom(path string) (*Config, error) {
	return load(path, false)
}

// load layers defaults, the config file and TOONIFY_* environment variables, then validates.
func load(path string, optional bool) (*Config, error) {
	v := newViper()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	} else if !optional {
		return nil, errors.ConfigNotFound(path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to decode config", "Check value types in the config file and TOONIFY_* variables", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("format", d.Format)
	v.SetDefault("stats", d.Stats)
	v.SetDefault("color", d.Color)
	v.SetDefault("memo.size", d.Memo.Size)
	v.SetDefault("watch.debounce", d.Watch.Debounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save writes config to the default location.
func Save(cfg *Config) error {
	paths := NewPaths()
	return SaveTo(cfg, paths.ConfigFile)
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	cfg.applyDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, DefaultFileMode)
}

// Validate checks config for valid values.
func (c *Config) Validate() error {
	if _, err := convert.ParseFormat(c.Format); err != nil {
		return errors.ConfigInvalid(err.Error())
	}

	if c.Memo.Size < 0 {
		return errors.ConfigInvalid("memo.size must be >= 0 (0 disables caching)")
	}

	if c.Watch.Debounce != "" {
		d, err := time.ParseDuration(c.Watch.Debounce)
		if err != nil {
			return errors.ConfigInvalid("invalid watch.debounce format, use Go duration format (e.g., 250ms)")
		}
		if d <= 0 {
			return errors.ConfigInvalid("watch.debounce must be positive")
		}
	}

	return nil
}

// applyDefaults sets default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce
	}
}

// InputFormat returns the configured default format, falling back to auto.
func (c *Config) InputFormat() convert.Format {
	f, err := convert.ParseFormat(c.Format)
	if err != nil {
		return convert.FormatAuto
	}
	return f
}

// DebounceDuration returns the watch debounce as a time.Duration.
func (w *WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return watch.DefaultDebounce
	}
	return d
}

// Exists checks if a config file exists at the default location.
func Exists() bool {
	paths := NewPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}
