package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/jaundice-service/internal/adapter/chromedp_fetcher"
	"github.com/user/jaundice-service/internal/adapter/http_fetcher"
	"github.com/user/jaundice-service/internal/adapter/postgres"
	redis_adapter "github.com/user/jaundice-service/internal/adapter/redis"
	"github.com/user/jaundice-service/internal/adapter/sanitizer"
	"github.com/user/jaundice-service/internal/adapter/tokenizer"
	"github.com/user/jaundice-service/internal/adapter/wordlist"
	"github.com/user/jaundice-service/internal/delivery/http/handler"
	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/internal/usecase"
	"github.com/user/jaundice-service/pkg/config"
	"go.uber.org/zap"
)

// App holds the wired rating service and the resources behind it.
type App struct {
	Rating usecase.RatingService
	// Deps are the optional stores, reported by the health check.
	Deps map[string]handler.Pinger

	closers []func()
}

// Build wires adapters and use cases from cfg. Postgres and Redis are used
// only when configured. The caller must Close the App.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	a := &App{Deps: make(map[string]handler.Pinger)}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	// --- Stores ---
	var (
		dbpool  *pgxpool.Pool
		history repository.RatingRepository
		cache   repository.CardCacheRepository
	)
	if cfg.PostgresURL != "" {
		dbpool, err = postgres.NewPool(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, dbpool.Close)
		if err = postgres.EnsureSchema(ctx, dbpool); err != nil {
			return nil, err
		}
		ratingRepo := postgres.NewRatingRepo(dbpool)
		history = ratingRepo
		a.Deps["postgres"] = ratingRepo
		logger.Info("PostgreSQL connection pool established")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		if err = rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		cardCache := redis_adapter.NewCardCache(rdb)
		cache = cardCache
		a.Deps["redis"] = cardCache
		logger.Info("Redis connection established")
	}

	// --- Charged words ---
	tok := tokenizer.NewRussianTokenizer(cfg.TokenizerChunkSize)

	var sources []repository.ChargedWordSource
	if dirs := cfg.ChargedWordsDirs(); len(dirs) > 0 {
		sources = append(sources, wordlist.NewFileSource(dirs...))
	}
	if cfg.ChargedWordsFromDB {
		sources = append(sources, postgres.NewChargedWordRepo(dbpool))
	}
	charged, err := usecase.LoadChargedWords(ctx, tok, logger, sources...)
	if err != nil {
		return nil, err
	}
	logger.Info("Charged words loaded", zap.Int("count", charged.Len()))

	// --- Pipeline ---
	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	if closer, ok := fetcher.(interface{ Close() }); ok {
		a.closers = append(a.closers, closer.Close)
	}

	registry := sanitizer.NewDefaultRegistry(cfg.ReadabilitySiteList()...)
	logger.Info("Sanitizers registered", zap.Strings("sites", registry.Sites()))

	var rater usecase.ArticleRater = usecase.NewArticlePipeline(fetcher, registry, tok, usecase.PipelineConfig{
		FetchTimeout:    cfg.FetchTimeout,
		AnalysisTimeout: cfg.AnalysisTimeout,
	}, logger)
	if cache != nil {
		rater = usecase.NewCachedRater(rater, cache, cfg.CacheTTL, logger)
	}

	orchestrator := usecase.NewOrchestrator(rater, usecase.OrchestratorConfig{
		MaxURLs:        cfg.MaxURLs,
		MaxConcurrency: cfg.MaxConcurrency,
		BatchTimeout:   cfg.BatchTimeout,
	}, logger)

	a.Rating = usecase.NewRatingService(orchestrator, charged, history, logger)
	return a, nil
}

func newFetcher(cfg *config.Config, logger *zap.Logger) (repository.FetcherRepository, error) {
	if cfg.FetchMode == config.FetchModeBrowser {
		return chromedp_fetcher.NewFetcher("", logger)
	}
	return http_fetcher.NewFetcher(http_fetcher.Options{MaxBodyBytes: cfg.MaxBodyBytes}, logger), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
