package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/pkg/utils"
)

const (
	cardKeyPrefix     = "jaundice:card:"
	fingerprintKeyLen = 16
)

// CardCacheImpl provides a concrete implementation for the CardCacheRepository interface using Redis.
type CardCacheImpl struct {
	client *redis.Client
}

// NewCardCache creates a new instance of CardCacheImpl.
func NewCardCache(client *redis.Client) *CardCacheImpl {
	return &CardCacheImpl{client: client}
}

var _ repository.CardCacheRepository = (*CardCacheImpl)(nil)

// generateKey creates a consistent Redis key for a URL rated against the
// word set identified by fingerprint.
func (c *CardCacheImpl) generateKey(fingerprint, url string) string {
	if len(fingerprint) > fingerprintKeyLen {
		fingerprint = fingerprint[:fingerprintKeyLen]
	}
	return cardKeyPrefix + fingerprint + ":" + utils.HashURL(url)
}

// Get implements repository.CardCacheRepository.
func (c *CardCacheImpl) Get(ctx context.Context, fingerprint, url string) (entity.ArticleCard, error) {
	raw, err := c.client.Get(ctx, c.generateKey(fingerprint, url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.ArticleCard{}, repository.ErrCacheMiss
	}
	if err != nil {
		return entity.ArticleCard{}, err
	}

	var card entity.ArticleCard
	if err := json.Unmarshal(raw, &card); err != nil {
		return entity.ArticleCard{}, fmt.Errorf("decode cached card: %w", err)
	}
	// A card cached under another URL would be a hash collision; treat as miss.
	if card.URL != url || !card.Status.IsValid() {
		return entity.ArticleCard{}, repository.ErrCacheMiss
	}
	return card, nil
}

// Put implements repository.CardCacheRepository.
func (c *CardCacheImpl) Put(ctx context.Context, fingerprint string, card entity.ArticleCard, expiry time.Duration) error {
	raw, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	// SETEX is atomic and sets the key with an expiry.
	return c.client.SetEx(ctx, c.generateKey(fingerprint, card.URL), raw, expiry).Err()
}

func (c *CardCacheImpl) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
