package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, 10, cfg.MaxURLs)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout)
	require.Equal(t, 3*time.Second, cfg.AnalysisTimeout)
	require.Zero(t, cfg.BatchTimeout)
	require.Equal(t, FetchModeHTTP, cfg.FetchMode)
	require.Equal(t, []string{"charged_dict"}, cfg.ChargedWordsDirs())
	require.Empty(t, cfg.ReadabilitySiteList())
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MAX_URLS", "3")
	t.Setenv("FETCH_TIMEOUT", "750ms")
	t.Setenv("READABILITY_SITES", "ria.ru, tass.ru ,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxURLs)
	require.Equal(t, 750*time.Millisecond, cfg.FetchTimeout)
	require.Equal(t, []string{"ria.ru", "tass.ru"}, cfg.ReadabilitySiteList())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			MaxURLs:            10,
			FetchTimeout:       time.Second,
			AnalysisTimeout:    time.Second,
			TokenizerChunkSize: 64,
			FetchMode:          FetchModeHTTP,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "zero max urls", mutate: func(c *Config) { c.MaxURLs = 0 }, wantErr: "MAX_URLS"},
		{name: "zero fetch timeout", mutate: func(c *Config) { c.FetchTimeout = 0 }, wantErr: "FETCH_TIMEOUT"},
		{name: "negative batch timeout", mutate: func(c *Config) { c.BatchTimeout = -time.Second }, wantErr: "BATCH_TIMEOUT"},
		{name: "unknown fetch mode", mutate: func(c *Config) { c.FetchMode = "curl" }, wantErr: "FETCH_MODE"},
		{name: "db words without db", mutate: func(c *Config) { c.ChargedWordsFromDB = true }, wantErr: "POSTGRES_URL"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	t.Parallel()

	base := Config{MaxURLs: 10, FetchTimeout: 3 * time.Second, AnalysisTimeout: 2 * time.Second}

	tests := []struct {
		name           string
		maxConcurrency int
		batchTimeout   time.Duration
		want           time.Duration
	}{
		{name: "unbounded concurrency", want: 5*time.Second + requestSlack},
		{name: "cap at batch size", maxConcurrency: 10, want: 5*time.Second + requestSlack},
		{name: "three waves", maxConcurrency: 4, want: 15*time.Second + requestSlack},
		{name: "one at a time", maxConcurrency: 1, want: 50*time.Second + requestSlack},
		{name: "batch timeout shorter", maxConcurrency: 1, batchTimeout: 8 * time.Second, want: 8*time.Second + requestSlack},
		{name: "batch timeout longer than batch", batchTimeout: time.Minute, want: 5*time.Second + requestSlack},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			cfg.MaxConcurrency = tt.maxConcurrency
			cfg.BatchTimeout = tt.batchTimeout
			require.Equal(t, tt.want, cfg.RequestTimeout())
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}
