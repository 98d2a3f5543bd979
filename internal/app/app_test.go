package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/pkg/config"
	"go.uber.org/zap"
)

func TestBuild_WithoutStores(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("кризис\nкатастрофа\n"), 0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>нет</h1></body></html>`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		MaxURLs:            2,
		FetchTimeout:       time.Second,
		AnalysisTimeout:    time.Second,
		FetchMode:          config.FetchModeHTTP,
		ChargedWordsPaths:  dir,
		TokenizerChunkSize: 64,
	}
	require.NoError(t, cfg.Validate())

	a, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(a.Close)

	require.Empty(t, a.Deps)
	require.Equal(t, 2, a.Rating.ChargedWords())
	require.Equal(t, 2, a.Rating.MaxURLs())

	// The test server is not a known site, so its page is not recognized.
	res, err := a.Rating.Rate(context.Background(), []string{srv.URL + "/article"})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	require.Equal(t, entity.StatusParsingError, res.Cards[0].Status)
}

func TestBuild_MissingDictionary(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		MaxURLs:            10,
		FetchTimeout:       time.Second,
		AnalysisTimeout:    time.Second,
		FetchMode:          config.FetchModeHTTP,
		ChargedWordsPaths:  filepath.Join(t.TempDir(), "missing"),
		TokenizerChunkSize: 64,
	}
	_, err := Build(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}
