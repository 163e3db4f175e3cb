// Package config loads sellerconsole settings from defaults, an optional
// sellerconsole.yaml, a .env file and SELLERCONSOLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (SELLERCONSOLE_LEADS_URL).
const EnvPrefix = "SELLERCONSOLE"

type Config struct {
	Leads     LeadsConfig     `mapstructure:"leads"`
	Delays    DelaysConfig    `mapstructure:"delays"`
	Search    SearchConfig    `mapstructure:"search"`
	Prefs     PrefsConfig     `mapstructure:"prefs"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LeadsConfig selects where the start-up lead list comes from. URL wins
// over File; with neither the embedded seed list is used.
type LeadsConfig struct {
	URL     string        `mapstructure:"url"`
	File    string        `mapstructure:"file"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DelaysConfig holds the simulated request latencies.
type DelaysConfig struct {
	Load    time.Duration `mapstructure:"load"`
	Save    time.Duration `mapstructure:"save"`
	Convert time.Duration `mapstructure:"convert"`
}

type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// PrefsConfig selects the filter/sort persistence backend.
type PrefsConfig struct {
	Backend     string `mapstructure:"backend"`
	Dir         string `mapstructure:"dir"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	LeadsFile string `mapstructure:"leads_file"`
}

type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Service  string `mapstructure:"service"`
}

// Backends accepted by prefs.backend.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// SetDefaults registers every key so environment overrides are picked up by
// Unmarshal even when no config file exists.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("leads.url", "")
	v.SetDefault("leads.file", "")
	v.SetDefault("leads.timeout", 10*time.Second)
	v.SetDefault("delays.load", time.Second)
	v.SetDefault("delays.save", 1500*time.Millisecond)
	v.SetDefault("delays.convert", 1500*time.Millisecond)
	v.SetDefault("search.debounce", 500*time.Millisecond)
	v.SetDefault("prefs.backend", BackendFile)
	v.SetDefault("prefs.dir", "")
	v.SetDefault("prefs.redis_addr", "localhost:6379")
	v.SetDefault("prefs.redis_prefix", "sellerconsole:")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.leads_file", "")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service", "sellerconsole")
}

// New returns a viper instance with defaults, env binding and the config
// search path set up. Flags may be bound on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName("sellerconsole")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "sellerconsole"))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) and the config file (if present), then
// unmarshals and validates.
func Load(v *viper.Viper) (*Config, error) {
	loadEnvFile()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func applyDefaults(cfg *Config) {
	cfg.Prefs.Backend = strings.ToLower(strings.TrimSpace(cfg.Prefs.Backend))
	if cfg.Prefs.Backend == "" {
		cfg.Prefs.Backend = BackendFile
	}
	if cfg.Telemetry.Service == "" {
		cfg.Telemetry.Service = "sellerconsole"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate rejects settings the console cannot run with.
func (c *Config) Validate() error {
	switch c.Prefs.Backend {
	case BackendFile:
	case BackendRedis:
		if c.Prefs.RedisAddr == "" {
			return errors.New("prefs.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown prefs.backend %q", c.Prefs.Backend)
	}
	for name, d := range map[string]time.Duration{
		"delays.load":     c.Delays.Load,
		"delays.save":     c.Delays.Save,
		"delays.convert":  c.Delays.Convert,
		"search.debounce": c.Search.Debounce,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}
