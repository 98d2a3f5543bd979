package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"go.uber.org/zap"
)

var ErrHistoryDisabled = errors.New("rating history is not configured")

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	saveBatchTimeout    = 2 * time.Second
)

// BatchResult is the outcome of one accepted request.
type BatchResult struct {
	BatchID string
	Cards   []entity.ArticleCard
}

// RatingService is the entry point used by the delivery layer. It owns the
// charged word set and records every batch when a history store is set.
type RatingService interface {
	Rate(ctx context.Context, urls []string) (*BatchResult, error)
	History(ctx context.Context, url string, limit int) ([]*entity.RatingRecord, error)
	MaxURLs() int
	ChargedWords() int
}

type ratingService struct {
	orchestrator *Orchestrator
	charged      *entity.ChargedWordSet
	history      repository.RatingRepository
	logger       *zap.Logger
}

// NewRatingService creates the service. history may be nil.
func NewRatingService(
	orchestrator *Orchestrator,
	charged *entity.ChargedWordSet,
	history repository.RatingRepository,
	logger *zap.Logger,
) RatingService {
	return &ratingService{
		orchestrator: orchestrator,
		charged:      charged,
		history:      history,
		logger:       logger.Named("rating_service"),
	}
}

func (s *ratingService) Rate(ctx context.Context, urls []string) (*BatchResult, error) {
	cards, err := s.orchestrator.Process(ctx, urls, s.charged)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{BatchID: uuid.NewString(), Cards: cards}
	if s.history != nil {
		s.saveHistory(result)
	}
	return result, nil
}

// saveHistory never fails the request: a lost history row is logged only.
func (s *ratingService) saveHistory(result *BatchResult) {
	ctx, cancel := context.WithTimeout(context.Background(), saveBatchTimeout)
	defer cancel()

	if err := s.history.SaveBatch(ctx, result.BatchID, result.Cards); err != nil {
		s.logger.Error("failed to save rating history",
			zap.String("batch_id", result.BatchID),
			zap.Error(err),
		)
	}
}

func (s *ratingService) History(ctx context.Context, url string, limit int) ([]*entity.RatingRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	records, err := s.history.FindByURL(ctx, url, limit)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load rating history for %s: %w", url, err)
	}
	return records, nil
}

func (s *ratingService) MaxURLs() int {
	return s.orchestrator.MaxURLs()
}

func (s *ratingService) ChargedWords() int {
	return s.charged.Len()
}
