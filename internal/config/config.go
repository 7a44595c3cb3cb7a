// Package config loads campaign-agent settings from defaults, an optional YAML
// file, CAMPAIGN_AGENT_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrNoCredential means no API key could be found for the configured provider.
var ErrNoCredential = errors.New("no API key configured")

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CAMPAIGN_AGENT"

// Provider names.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Provider    string         `mapstructure:"provider"`
	Model       string         `mapstructure:"model"`
	APIKey      string         `mapstructure:"api_key"`
	BaseURL     string         `mapstructure:"base_url"`
	Temperature float64        `mapstructure:"temperature"`
	Store       StoreConfig    `mapstructure:"store"`
	Server      ServerConfig   `mapstructure:"server"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Pipeline    PipelineConfig `mapstructure:"pipeline"`
	Log         LogConfig      `mapstructure:"log"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Brokers        []string      `mapstructure:"brokers"`
	Topic          string        `mapstructure:"topic"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type PipelineConfig struct {
	CandidateCount int    `mapstructure:"candidate_count"`
	Organization   string `mapstructure:"organization"`
	DonationURL    string `mapstructure:"donation_url"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

var defaults = map[string]any{
	"provider":                 ProviderGemini,
	"model":                    "",
	"api_key":                  "",
	"base_url":                 "",
	"temperature":              0.8,
	"store.driver":             "file",
	"store.path":               "researched_companies.txt",
	"store.dsn":                "",
	"server.addr":              ":5001",
	"kafka.brokers":            []string{},
	"kafka.topic":              "campaign-agent.events",
	"kafka.publish_timeout":    "3s",
	"pipeline.candidate_count": 10,
	"pipeline.organization":    "Dekleptocracy",
	"pipeline.donation_url":    "https://secure.actblue.com/donate/dekleptocracy-action-social-media",
	"log.level":                "info",
	"log.development":          false,
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"provider":    "provider",
	"model":       "model",
	"store":       "store.driver",
	"memory-file": "store.path",
	"dsn":         "store.dsn",
	"addr":        "server.addr",
	"log-level":   "log.level",
	"brokers":     "kafka.brokers",
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// File is an explicit config path; empty searches the default locations.
	File string
	// Flags, when set, override every other source for the flags they contain.
	Flags *pflag.FlagSet
}

// Load resolves the configuration. A missing config file is not an error.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("campaign-agent")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "campaign-agent"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "campaign-agent"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.APIKey == "" {
		cfg.APIKey = ProviderKeyFromEnv(cfg.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	switch c.Store.Driver {
	case "file", "sqlite":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("config: store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config: temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.Pipeline.CandidateCount <= 0 {
		return fmt.Errorf("config: pipeline.candidate_count must be positive")
	}
	return nil
}

// providerEnv lists the vendor variables consulted, in order, when api_key is unset.
var providerEnv = map[string][]string{
	ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	ProviderOpenAI:    {"OPENAI_API_KEY"},
	ProviderAnthropic: {"ANTHROPIC_API_KEY"},
}

// ProviderKeyFromEnv returns the first non-empty vendor key for provider.
func ProviderKeyFromEnv(provider string) string {
	for _, name := range providerEnv[provider] {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
