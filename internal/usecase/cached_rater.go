package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/pkg/metrics"
	"go.uber.org/zap"
)

// cacheOpTimeout bounds every cache round trip so a slow cache cannot eat
// into the pipeline deadlines.
const cacheOpTimeout = 200 * time.Millisecond

// CachedRater serves OK cards from a cache and stores fresh OK cards in it.
// Entries are scoped by the charged word set's fingerprint, so changing the
// dictionary invalidates every cached rating.
// Failed cards are never cached: a fetch error or timeout may be transient.
type CachedRater struct {
	next   ArticleRater
	cache  repository.CardCacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedRater(next ArticleRater, cache repository.CardCacheRepository, ttl time.Duration, logger *zap.Logger) *CachedRater {
	return &CachedRater{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("card_cache"),
	}
}

var _ ArticleRater = (*CachedRater)(nil)

// Rate implements ArticleRater.
func (c *CachedRater) Rate(ctx context.Context, url string, charged *entity.ChargedWordSet) entity.ArticleCard {
	fingerprint := charged.Fingerprint()
	if card, ok := c.lookup(ctx, fingerprint, url); ok {
		return card
	}

	card := c.next.Rate(ctx, url, charged)
	if card.Status == entity.StatusOK {
		c.store(fingerprint, card)
	}
	return card
}

func (c *CachedRater) lookup(ctx context.Context, fingerprint, url string) (entity.ArticleCard, bool) {
	lookupCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	card, err := c.cache.Get(lookupCtx, fingerprint, url)
	switch {
	case err == nil:
		metrics.RecordCacheLookup("hit")
		return card, true
	case errors.Is(err, repository.ErrCacheMiss):
		metrics.RecordCacheLookup("miss")
	default:
		metrics.RecordCacheLookup("error")
		c.logger.Warn("card cache lookup failed", zap.String("url", url), zap.Error(err))
	}
	return entity.ArticleCard{}, false
}

// store runs detached from the request context: a client that disconnects
// right after getting its answer should still leave the card cached.
func (c *CachedRater) store(fingerprint string, card entity.ArticleCard) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.cache.Put(ctx, fingerprint, card, c.ttl); err != nil {
		c.logger.Warn("card cache store failed", zap.String("url", card.URL), zap.Error(err))
	}
}
