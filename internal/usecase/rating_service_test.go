package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"go.uber.org/zap"
)

func okRater() ArticleRater {
	return funcRater(func(_ context.Context, url string) entity.ArticleCard {
		return entity.NewRatedCard(url, 1, 1)
	})
}

func TestRatingService_RateRecordsHistory(t *testing.T) {
	t.Parallel()

	history := newMemoryHistory()
	o := newTestOrchestrator(okRater(), OrchestratorConfig{MaxURLs: 3})
	svc := NewRatingService(o, testCharged, history, zap.NewNop())

	res, err := svc.Rate(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, res.Cards, 2)

	_, err = uuid.Parse(res.BatchID)
	require.NoError(t, err)
	require.Equal(t, res.Cards, history.batches[res.BatchID])

	records, err := svc.History(context.Background(), "b", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, res.BatchID, records[0].BatchID)

	require.Equal(t, 3, svc.MaxURLs())
	require.Equal(t, 2, svc.ChargedWords())
}

func TestRatingService_HistoryFailureDoesNotFailRequest(t *testing.T) {
	t.Parallel()

	history := newMemoryHistory()
	history.saveErr = errors.New("db down")
	svc := NewRatingService(newTestOrchestrator(okRater(), OrchestratorConfig{}), testCharged, history, zap.NewNop())

	res, err := svc.Rate(context.Background(), []string{"a"})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
}

func TestRatingService_AdmissionErrorsPassThrough(t *testing.T) {
	t.Parallel()

	history := newMemoryHistory()
	svc := NewRatingService(newTestOrchestrator(okRater(), OrchestratorConfig{MaxURLs: 1}), testCharged, history, zap.NewNop())

	_, err := svc.Rate(context.Background(), []string{"a", "b"})
	var tooMany *TooManyURLsError
	require.ErrorAs(t, err, &tooMany)
	require.Empty(t, history.batches)
}

func TestRatingService_WithoutHistory(t *testing.T) {
	t.Parallel()

	svc := NewRatingService(newTestOrchestrator(okRater(), OrchestratorConfig{}), testCharged, nil, zap.NewNop())

	_, err := svc.Rate(context.Background(), []string{"a"})
	require.NoError(t, err)

	_, err = svc.History(context.Background(), "a", 10)
	require.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestRatingService_HistoryNotFound(t *testing.T) {
	t.Parallel()

	svc := NewRatingService(newTestOrchestrator(okRater(), OrchestratorConfig{}), testCharged, newMemoryHistory(), zap.NewNop())
	_, err := svc.History(context.Background(), "never", 10)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
