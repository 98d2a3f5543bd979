package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxURLs caps a batch when no limit is configured.
const DefaultMaxURLs = 10

var ErrEmptyBatch = errors.New("no urls in request")

// TooManyURLsError rejects a batch above the configured limit.
type TooManyURLsError struct {
	Limit int
	Got   int
}

func (e *TooManyURLsError) Error() string {
	return fmt.Sprintf("too many urls in request, should be %d or less", e.Limit)
}

// OrchestratorConfig bounds a batch.
type OrchestratorConfig struct {
	MaxURLs int
	// MaxConcurrency limits pipelines running at once; 0 means one goroutine
	// per URL.
	MaxConcurrency int
	// BatchTimeout, when positive, cuts the whole batch short. Pipelines
	// still running at that point report StatusTimeout.
	BatchTimeout time.Duration
}

// Orchestrator rates a batch of URLs concurrently.
type Orchestrator struct {
	rater  ArticleRater
	cfg    OrchestratorConfig
	logger *zap.Logger
}

func NewOrchestrator(rater ArticleRater, cfg OrchestratorConfig, logger *zap.Logger) *Orchestrator {
	if cfg.MaxURLs <= 0 {
		cfg.MaxURLs = DefaultMaxURLs
	}
	return &Orchestrator{
		rater:  rater,
		cfg:    cfg,
		logger: logger.Named("orchestrator"),
	}
}

// MaxURLs reports the admission limit.
func (o *Orchestrator) MaxURLs() int {
	return o.cfg.MaxURLs
}

// Admit checks a batch against the admission rules without running it.
func (o *Orchestrator) Admit(urls []string) error {
	if len(urls) == 0 {
		return ErrEmptyBatch
	}
	if len(urls) > o.cfg.MaxURLs {
		return &TooManyURLsError{Limit: o.cfg.MaxURLs, Got: len(urls)}
	}
	return nil
}

// Process rates every URL and returns one card per input, in input order.
// The only errors are admission errors, returned before any work starts.
func (o *Orchestrator) Process(ctx context.Context, urls []string, charged *entity.ChargedWordSet) ([]entity.ArticleCard, error) {
	if err := o.Admit(urls); err != nil {
		return nil, err
	}
	metrics.ObserveBatch(len(urls))

	if o.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.BatchTimeout)
		defer cancel()
	}

	start := time.Now()
	cards := make([]entity.ArticleCard, len(urls))

	// Pipelines never return errors, so the group only serves as a bounded
	// WaitGroup; one failing URL cannot cancel its siblings.
	var g errgroup.Group
	if o.cfg.MaxConcurrency > 0 {
		g.SetLimit(o.cfg.MaxConcurrency)
	}
	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			if ctx.Err() != nil {
				cards[i] = entity.NewFailedCard(url, entity.StatusTimeout)
			} else {
				cards[i] = o.rater.Rate(ctx, url, charged)
			}
			metrics.RecordArticle(cards[i].Status.String())
			return nil
		})
	}
	_ = g.Wait()

	o.logger.Info("batch rated",
		zap.Int("urls", len(urls)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cards, nil
}
