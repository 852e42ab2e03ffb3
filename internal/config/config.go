package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. AGENCYOPS_DB_PATH.
const EnvPrefix = "AGENCYOPS_"

// Config holds runtime settings. Values come from defaults, then the YAML
// file named by AGENCYOPS_CONFIG, then environment variables.
type Config struct {
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Display DisplayConfig `yaml:"display"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type DBConfig struct {
	Path string `yaml:"path" env:"DB_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

type StoreConfig struct {
	WriteRetries int           `yaml:"write_retries" env:"STORE_WRITE_RETRIES"`
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"STORE_RETRY_BACKOFF"`
	// PollInterval is how often live views check for commits made by other
	// processes. Zero turns polling off.
	PollInterval time.Duration `yaml:"poll_interval" env:"STORE_POLL_INTERVAL"`
}

type DisplayConfig struct {
	Currency string `yaml:"currency" env:"DISPLAY_CURRENCY"`
	Locale   string `yaml:"locale" env:"DISPLAY_LOCALE"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" env:"METRICS_ADDR"`
}

func Defaults() Config {
	return Config{
		DB:      DBConfig{Path: "~/.agencyops/agencyops.db"},
		Log:     LogConfig{Level: "warn"},
		Store:   StoreConfig{WriteRetries: 2, RetryBackoff: 100 * time.Millisecond, PollInterval: time.Second},
		Display: DisplayConfig{Currency: "NPR", Locale: "en-IN"},
		Metrics: MetricsConfig{Addr: ":9464"},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	return load(os.Getenv(EnvPrefix+"CONFIG"), nil)
}

// load applies the file at path (if any) and then the environment. A nil
// environ means the process environment.
func load(path string, environ map[string]string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	path, err := expandHome(cfg.DB.Path)
	if err != nil {
		return Config{}, err
	}
	cfg.DB.Path = path

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func (c Config) Validate() error {
	if c.DB.Path == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Store.WriteRetries < 0 {
		return fmt.Errorf("store.write_retries must not be negative (got %d)", c.Store.WriteRetries)
	}
	if c.Store.RetryBackoff < 0 {
		return fmt.Errorf("store.retry_backoff must not be negative (got %s)", c.Store.RetryBackoff)
	}
	if c.Store.PollInterval < 0 {
		return fmt.Errorf("store.poll_interval must not be negative (got %s)", c.Store.PollInterval)
	}
	if c.Display.Currency == "" {
		return fmt.Errorf("display.currency must not be empty")
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error onto slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", s)
}
