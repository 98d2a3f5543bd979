package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/jaundice-service/internal/repository"
)

// ChargedWordRepoImpl keeps the charged word dictionary in the charged_words table.
type ChargedWordRepoImpl struct {
	db *pgxpool.Pool
}

// NewChargedWordRepo creates a new instance of ChargedWordRepoImpl.
func NewChargedWordRepo(db *pgxpool.Pool) *ChargedWordRepoImpl {
	return &ChargedWordRepoImpl{db: db}
}

var _ repository.ChargedWordSource = (*ChargedWordRepoImpl)(nil)

// LoadWords implements repository.ChargedWordSource.
func (r *ChargedWordRepoImpl) LoadWords(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT word FROM charged_words ORDER BY word;`)
	if err != nil {
		return nil, fmt.Errorf("query charged words: %w", err)
	}
	words, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan charged words: %w", err)
	}
	return words, nil
}

// Import upserts words with the given tone and returns how many rows were new.
func (r *ChargedWordRepoImpl) Import(ctx context.Context, words []string, tone string) (int64, error) {
	if len(words) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `
		INSERT INTO charged_words (word, tone)
		SELECT DISTINCT unnest($1::text[]), $2::text
		ON CONFLICT (word) DO NOTHING;`,
		words, tone,
	)
	if err != nil {
		return 0, fmt.Errorf("import charged words: %w", err)
	}
	return tag.RowsAffected(), nil
}
