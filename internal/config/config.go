// Package config handles configuration loading for StockPulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    yaml:"server"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	News      NewsConfig      `mapstructure:"news"      yaml:"news"`
	Social    SocialConfig    `mapstructure:"social"    yaml:"social"`
	Sentiment SentimentConfig `mapstructure:"sentiment" yaml:"sentiment"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Host              string   `mapstructure:"host"                yaml:"host"`
	Port              int      `mapstructure:"port"                yaml:"port"`
	CORSOrigins       []string `mapstructure:"cors_origins"        yaml:"cors_origins"`
	RequestTimeoutSec int      `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
}

// Addr renders the listen address, e.g. "0.0.0.0:8080".
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RequestTimeout returns the per-request timeout.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

// CacheConfig holds the per-operation memoization TTLs, in seconds.
type CacheConfig struct {
	PriceTTLSec       int `mapstructure:"price_ttl_sec"       yaml:"price_ttl_sec"`
	InfoTTLSec        int `mapstructure:"info_ttl_sec"        yaml:"info_ttl_sec"`
	NewsTTLSec        int `mapstructure:"news_ttl_sec"        yaml:"news_ttl_sec"`
	SentimentTTLSec   int `mapstructure:"sentiment_ttl_sec"   yaml:"sentiment_ttl_sec"`
	ComparablesTTLSec int `mapstructure:"comparables_ttl_sec" yaml:"comparables_ttl_sec"`
}

func (c CacheConfig) PriceTTL() time.Duration       { return time.Duration(c.PriceTTLSec) * time.Second }
func (c CacheConfig) InfoTTL() time.Duration        { return time.Duration(c.InfoTTLSec) * time.Second }
func (c CacheConfig) NewsTTL() time.Duration        { return time.Duration(c.NewsTTLSec) * time.Second }
func (c CacheConfig) SentimentTTL() time.Duration   { return time.Duration(c.SentimentTTLSec) * time.Second }
func (c CacheConfig) ComparablesTTL() time.Duration { return time.Duration(c.ComparablesTTLSec) * time.Second }

// NewsConfig holds news fetch defaults.
type NewsConfig struct {
	Days        int `mapstructure:"days"         yaml:"days"`
	MaxArticles int `mapstructure:"max_articles" yaml:"max_articles"`
}

// SocialConfig holds synthetic social feed defaults.
type SocialConfig struct {
	MaxPosts int `mapstructure:"max_posts" yaml:"max_posts"`
}

// SentimentConfig selects the scoring blend: "canonical" or "sharpened".
type SentimentConfig struct {
	Blend string `mapstructure:"blend" yaml:"blend"`
}

// Defaults returns a configuration populated with the built-in defaults,
// without consulting config files or the environment.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; unmarshal cannot fail on them.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./stockpulse.yaml (working directory)
//  2. ~/.stockpulse/stockpulse.yaml (home directory)
//  3. /etc/stockpulse/stockpulse.yaml (system)
//
// Environment variables override config file values.
// Format: STOCKPULSE_<SECTION>_<KEY>, e.g., STOCKPULSE_SERVER_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("stockpulse")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".stockpulse"))
	v.AddConfigPath("/etc/stockpulse")

	v.SetEnvPrefix("STOCKPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("STOCKPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.request_timeout_sec", 60)

	// Cache TTL defaults: quotes 10 min, company info 30 min, news and
	// sentiment summaries 1 h, comparables 24 h.
	v.SetDefault("cache.price_ttl_sec", 600)
	v.SetDefault("cache.info_ttl_sec", 1800)
	v.SetDefault("cache.news_ttl_sec", 3600)
	v.SetDefault("cache.sentiment_ttl_sec", 3600)
	v.SetDefault("cache.comparables_ttl_sec", 86400)

	// News defaults
	v.SetDefault("news.days", 7)
	v.SetDefault("news.max_articles", 10)

	// Social defaults
	v.SetDefault("social.max_posts", 20)

	// Sentiment defaults
	v.SetDefault("sentiment.blend", "canonical")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
