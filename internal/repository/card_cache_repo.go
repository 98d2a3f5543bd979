package repository

import (
	"context"
	"time"

	"github.com/user/jaundice-service/internal/entity"
)

// CardCacheRepository keeps recently computed cards keyed by URL and by the
// fingerprint of the charged word set they were rated against.
type CardCacheRepository interface {
	// Get returns ErrCacheMiss when no card is stored for url under fingerprint.
	Get(ctx context.Context, fingerprint, url string) (entity.ArticleCard, error)
	// Put stores card under fingerprint with the given expiry.
	Put(ctx context.Context, fingerprint string, card entity.ArticleCard, expiry time.Duration) error
	Ping(ctx context.Context) error
}
