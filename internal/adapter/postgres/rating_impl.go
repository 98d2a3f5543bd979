package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
)

// RatingRepoImpl provides a concrete implementation for the RatingRepository interface using PostgreSQL.
type RatingRepoImpl struct {
	db *pgxpool.Pool
}

// NewRatingRepo creates a new instance of RatingRepoImpl.
func NewRatingRepo(db *pgxpool.Pool) *RatingRepoImpl {
	return &RatingRepoImpl{db: db}
}

var _ repository.RatingRepository = (*RatingRepoImpl)(nil)

// SaveBatch stores all cards of a batch in one transaction, keeping their
// position so the batch can be replayed in request order.
func (r *RatingRepoImpl) SaveBatch(ctx context.Context, batchID string, cards []entity.ArticleCard) error {
	if len(cards) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, card := range cards {
		batch.Queue(`
			INSERT INTO article_ratings (batch_id, position, url, status, rating, words_number)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (batch_id, position) DO NOTHING`,
			batchID, i, card.URL, string(card.Status), card.Rating, card.WordsNumber,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert ratings of batch %s: %w", batchID, err)
	}

	return tx.Commit(ctx)
}

// FindByURL retrieves the rating history of a URL, newest first.
func (r *RatingRepoImpl) FindByURL(ctx context.Context, url string, limit int) ([]*entity.RatingRecord, error) {
	query := `
		SELECT id, batch_id::text, url, status, rating, words_number, rated_at
		FROM article_ratings
		WHERE url = $1
		ORDER BY rated_at DESC, id DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, url, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.RatingRecord
	for rows.Next() {
		var rec entity.RatingRecord
		var status string
		if err := rows.Scan(
			&rec.ID,
			&rec.BatchID,
			&rec.URL,
			&status,
			&rec.Rating,
			&rec.WordsNumber,
			&rec.RatedAt,
		); err != nil {
			return nil, err
		}
		rec.Status = entity.ProcessingStatus(status)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, repository.ErrNotFound
	}
	return records, nil
}

func (r *RatingRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
