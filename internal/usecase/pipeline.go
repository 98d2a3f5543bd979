package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/pkg/metrics"
	"go.uber.org/zap"
)

const (
	stageFetch    = "fetch"
	stageSanitize = "sanitize"
	stageTokenize = "tokenize"
	stageScore    = "score"
)

// ArticleRater produces the card for a single URL. Implementations never
// fail: every problem is reported through the card status.
type ArticleRater interface {
	Rate(ctx context.Context, url string, charged *entity.ChargedWordSet) entity.ArticleCard
}

// PipelineConfig holds the per-stage deadlines.
type PipelineConfig struct {
	FetchTimeout    time.Duration
	AnalysisTimeout time.Duration
}

// ArticlePipeline runs fetch, sanitize, tokenize and score for one URL.
type ArticlePipeline struct {
	fetcher    repository.FetcherRepository
	sanitizers repository.SanitizerRegistry
	tokenizer  repository.Tokenizer
	cfg        PipelineConfig
	logger     *zap.Logger
}

// NewArticlePipeline wires the pipeline stages.
func NewArticlePipeline(
	fetcher repository.FetcherRepository,
	sanitizers repository.SanitizerRegistry,
	tokenizer repository.Tokenizer,
	cfg PipelineConfig,
	logger *zap.Logger,
) *ArticlePipeline {
	return &ArticlePipeline{
		fetcher:    fetcher,
		sanitizers: sanitizers,
		tokenizer:  tokenizer,
		cfg:        cfg,
		logger:     logger.Named("pipeline"),
	}
}

var _ ArticleRater = (*ArticlePipeline)(nil)

// Rate implements ArticleRater.
func (p *ArticlePipeline) Rate(ctx context.Context, url string, charged *entity.ChargedWordSet) entity.ArticleCard {
	start := time.Now()
	card := p.run(ctx, url, charged)

	p.logger.Debug("article processed",
		zap.String("url", url),
		zap.String("status", card.Status.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return card
}

func (p *ArticlePipeline) run(ctx context.Context, url string, charged *entity.ChargedWordSet) entity.ArticleCard {
	html, err := p.fetch(ctx, url)
	if err != nil {
		return p.fail(url, stageFetch, err)
	}

	text, err := p.sanitize(url, html)
	if err != nil {
		return p.fail(url, stageSanitize, err)
	}

	words, err := p.tokenize(ctx, text)
	if err != nil {
		return p.fail(url, stageTokenize, err)
	}

	scoreStart := time.Now()
	rating, wordsNumber, err := CalculateRating(words, charged)
	metrics.ObserveStage(stageScore, scoreStart)
	if err != nil {
		return p.fail(url, stageScore, err)
	}
	return entity.NewRatedCard(url, rating, wordsNumber)
}

func (p *ArticlePipeline) fetch(ctx context.Context, url string) (string, error) {
	defer metrics.ObserveStage(stageFetch, time.Now())

	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout)
	defer cancel()
	return p.fetcher.Fetch(fetchCtx, url)
}

func (p *ArticlePipeline) sanitize(url, html string) (text string, err error) {
	defer metrics.ObserveStage(stageSanitize, time.Now())

	sanitizer, err := p.sanitizers.Resolve(url)
	if err != nil {
		return "", err
	}

	// Markup from the wild can trip parser edge cases; one bad page must not
	// take the batch down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: sanitizer panic: %v", repository.ErrUnsupportedDocument, r)
		}
	}()
	return sanitizer.Sanitize(url, html)
}

// tokenize gets a deadline of its own, derived from the caller's context and
// not from the fetch deadline, so time spent fetching does not shorten it.
func (p *ArticlePipeline) tokenize(ctx context.Context, text string) ([]string, error) {
	defer metrics.ObserveStage(stageTokenize, time.Now())

	analysisCtx, cancel := context.WithTimeout(ctx, p.cfg.AnalysisTimeout)
	defer cancel()
	return p.tokenizer.Tokenize(analysisCtx, text)
}

func (p *ArticlePipeline) fail(url, stage string, err error) entity.ArticleCard {
	status := statusFor(stage, err)
	p.logger.Info("article not rated",
		zap.String("url", url),
		zap.String("stage", stage),
		zap.String("status", status.String()),
		zap.Error(err),
	)
	return entity.NewFailedCard(url, status)
}

// statusFor maps a stage error to a processing status. Errors that carry no
// known sentinel fall back on the stage they came from.
func statusFor(stage string, err error) entity.ProcessingStatus {
	switch {
	case errors.Is(err, repository.ErrFetchTimeout),
		errors.Is(err, repository.ErrAnalysisTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return entity.StatusTimeout
	case errors.Is(err, repository.ErrFetchFailed):
		return entity.StatusFetchError
	case errors.Is(err, repository.ErrUnsupportedDocument),
		errors.Is(err, repository.ErrNoWords):
		return entity.StatusParsingError
	}

	if stage == stageFetch {
		return entity.StatusFetchError
	}
	return entity.StatusParsingError
}
