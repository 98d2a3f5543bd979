package usecase

import (
	"context"
	"fmt"

	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"go.uber.org/zap"
)

// maxReportedDropped caps how many unusable entries are listed in the warning.
const maxReportedDropped = 20

// LoadChargedWords reads raw words from every source and normalizes them with
// the same tokenizer articles go through, so lookups compare like with like.
// It runs once at start-up, before any pipeline.
//
// Entries the tokenizer reduces to nothing (too short, punctuation only) could
// never match an article word; they are skipped and reported with a warning.
func LoadChargedWords(ctx context.Context, tokenizer repository.Tokenizer, logger *zap.Logger, sources ...repository.ChargedWordSource) (*entity.ChargedWordSet, error) {
	var (
		normalized []string
		dropped    []string
		droppedN   int
	)
	for _, src := range sources {
		raw, err := src.LoadWords(ctx)
		if err != nil {
			return nil, fmt.Errorf("load charged words: %w", err)
		}
		for _, word := range raw {
			forms, err := tokenizer.Tokenize(ctx, word)
			if err != nil {
				return nil, fmt.Errorf("normalize charged word %q: %w", word, err)
			}
			if len(forms) == 0 {
				droppedN++
				if len(dropped) < maxReportedDropped {
					dropped = append(dropped, word)
				}
				continue
			}
			normalized = append(normalized, forms...)
		}
	}

	if droppedN > 0 {
		logger.Warn("Charged words skipped: they normalize to no countable form",
			zap.Int("count", droppedN),
			zap.Strings("words", dropped),
		)
	}

	set := entity.NewChargedWordSet(normalized)
	if set.Len() == 0 {
		return nil, fmt.Errorf("charged word set is empty")
	}
	return set, nil
}
