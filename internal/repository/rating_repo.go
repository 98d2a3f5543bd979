package repository

import (
	"context"

	"github.com/user/jaundice-service/internal/entity"
)

// RatingRepository persists the history of rated batches.
type RatingRepository interface {
	// SaveBatch stores every card of one batch under batchID.
	SaveBatch(ctx context.Context, batchID string, cards []entity.ArticleCard) error
	// FindByURL returns stored records for url, newest first.
	FindByURL(ctx context.Context, url string, limit int) ([]*entity.RatingRecord, error)
	Ping(ctx context.Context) error
}
