package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	LogFormat  string `mapstructure:"LOG_FORMAT"`

	MaxURLs         int           `mapstructure:"MAX_URLS"`
	MaxConcurrency  int           `mapstructure:"MAX_CONCURRENCY"`
	FetchTimeout    time.Duration `mapstructure:"FETCH_TIMEOUT"`
	AnalysisTimeout time.Duration `mapstructure:"ANALYSIS_TIMEOUT"`
	BatchTimeout    time.Duration `mapstructure:"BATCH_TIMEOUT"`
	FetchMode       string        `mapstructure:"FETCH_MODE"`
	MaxBodyBytes    int64         `mapstructure:"MAX_BODY_BYTES"`

	ChargedWordsPaths  string `mapstructure:"CHARGED_WORDS_PATHS"`
	ChargedWordsFromDB bool   `mapstructure:"CHARGED_WORDS_FROM_DB"`
	TokenizerChunkSize int    `mapstructure:"TOKENIZER_CHUNK_SIZE"`
	ReadabilitySites   string `mapstructure:"READABILITY_SITES"`

	PostgresURL string `mapstructure:"POSTGRES_URL"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing .env is fine: production configures through the environment.
	_ = v.ReadInConfig()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("MAX_URLS", 10)
	v.SetDefault("MAX_CONCURRENCY", 0)
	v.SetDefault("FETCH_TIMEOUT", 3*time.Second)
	v.SetDefault("ANALYSIS_TIMEOUT", 3*time.Second)
	v.SetDefault("BATCH_TIMEOUT", time.Duration(0))
	v.SetDefault("FETCH_MODE", FetchModeHTTP)
	v.SetDefault("MAX_BODY_BYTES", int64(10<<20))
	v.SetDefault("CHARGED_WORDS_PATHS", "charged_dict")
	v.SetDefault("CHARGED_WORDS_FROM_DB", false)
	v.SetDefault("TOKENIZER_CHUNK_SIZE", 512)
	v.SetDefault("READABILITY_SITES", "")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 24*time.Hour)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxURLs <= 0 {
		errs = append(errs, errors.New("MAX_URLS must be positive"))
	}
	if c.MaxConcurrency < 0 {
		errs = append(errs, errors.New("MAX_CONCURRENCY must not be negative"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT must be positive"))
	}
	if c.AnalysisTimeout <= 0 {
		errs = append(errs, errors.New("ANALYSIS_TIMEOUT must be positive"))
	}
	if c.BatchTimeout < 0 {
		errs = append(errs, errors.New("BATCH_TIMEOUT must not be negative"))
	}
	if c.TokenizerChunkSize <= 0 {
		errs = append(errs, errors.New("TOKENIZER_CHUNK_SIZE must be positive"))
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		errs = append(errs, fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.FetchMode))
	}
	if c.ChargedWordsFromDB && c.PostgresURL == "" {
		errs = append(errs, errors.New("CHARGED_WORDS_FROM_DB requires POSTGRES_URL"))
	}
	return errors.Join(errs...)
}

// requestSlack covers cache round trips, sanitizing, scoring and encoding on
// top of the stage deadlines.
const requestSlack = 5 * time.Second

// RequestTimeout is how long one rating request may run. It must outlast the
// slowest admissible batch: with MAX_CONCURRENCY set, URLs run in waves of
// that size, each wave bounded by both stage deadlines. A positive
// BATCH_TIMEOUT cuts the batch short earlier.
func (c *Config) RequestTimeout() time.Duration {
	waves := 1
	if c.MaxConcurrency > 0 && c.MaxConcurrency < c.MaxURLs {
		waves = (c.MaxURLs + c.MaxConcurrency - 1) / c.MaxConcurrency
	}
	batch := time.Duration(waves) * (c.FetchTimeout + c.AnalysisTimeout)
	if c.BatchTimeout > 0 {
		batch = min(batch, c.BatchTimeout)
	}
	return batch + requestSlack
}

// ChargedWordsDirs splits CHARGED_WORDS_PATHS into its comma separated entries.
func (c *Config) ChargedWordsDirs() []string {
	return splitList(c.ChargedWordsPaths)
}

// ReadabilitySiteList splits READABILITY_SITES into site keys.
func (c *Config) ReadabilitySiteList() []string {
	return splitList(c.ReadabilitySites)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
