// Package config loads the catalog configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment names. Development without forced onboarding bypasses the gate.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full catalog configuration.
type Config struct {
	Environment     string `yaml:"environment"`
	ForceOnboarding bool   `yaml:"force_onboarding"`

	Content ContentConfig `yaml:"content"`
	Server  ServerConfig  `yaml:"server"`
	Locale  LocaleConfig  `yaml:"locale"`
	Rebuild RebuildConfig `yaml:"rebuild"`
}

// ContentConfig locates the content snapshot source.
type ContentConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// EventLogPath is the SQLite file recording snapshot rebuild events.
	// Empty disables the event log; ":memory:" keeps it in-process.
	EventLogPath string `yaml:"event_log_path"`
}

// LocaleConfig holds the supported locale set.
type LocaleConfig struct {
	Supported []string `yaml:"supported"`
	Default   string   `yaml:"default"`
}

// RebuildConfig controls snapshot refresh in serve mode.
type RebuildConfig struct {
	// Watch enables filesystem watching of the content dir.
	Watch bool `yaml:"watch"`
	// Interval adds a periodic full rebuild; zero disables it.
	Interval Duration `yaml:"interval"`
}

// Duration wraps time.Duration so YAML values like "15m" decode naturally.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Environment: EnvDevelopment,
		Content:     ContentConfig{Dir: "./content"},
		Server:      ServerConfig{Addr: ":8080"},
		Locale: LocaleConfig{
			Supported: []string{"tr", "en", "de", "es", "fr", "it", "ru", "ro", "bg", "el", "hu", "az"},
			Default:   "tr",
		},
		Rebuild: RebuildConfig{Watch: true},
	}
}

// Load reads the configuration file, layering .env files and process
// environment variables on top. A missing config file yields the defaults.
func Load(path string) (*Config, error) {
	// Not finding a .env file is fine; explicit env vars still apply.
	_ = godotenv.Load(".env.local", ".env")

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults + env only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CATALOG_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("FORCE_ONBOARDING"); v != "" {
		cfg.ForceOnboarding = v == "true"
	}
	if v := os.Getenv("CATALOG_CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("CATALOG_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CATALOG_REBUILD_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Rebuild.Interval = Duration(d)
		}
	}
	if v := os.Getenv("CATALOG_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Rebuild.Watch = b
		}
	}
}

func (c *Config) validate() error {
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Content.Dir == "" {
		return fmt.Errorf("content.dir must not be empty")
	}
	if len(c.Locale.Supported) == 0 {
		return fmt.Errorf("locale.supported must not be empty")
	}
	if !contains(c.Locale.Supported, c.Locale.Default) {
		return fmt.Errorf("locale.default %q is not in locale.supported", c.Locale.Default)
	}
	return nil
}

// GateBypass reports whether the onboarding gate is bypassed: development
// environment without forced onboarding.
func (c *Config) GateBypass() bool {
	return c.Environment == EnvDevelopment && !c.ForceOnboarding
}

// Production reports whether the production environment is active.
func (c *Config) Production() bool {
	return c.Environment == EnvProduction
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
