package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/pkg/metrics"
	"go.uber.org/zap"
)

func newTestOrchestrator(rater ArticleRater, cfg OrchestratorConfig) *Orchestrator {
	return NewOrchestrator(rater, cfg, zap.NewNop())
}

func TestOrchestrator_RejectsOversizedBatchBeforeWork(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	pipeline := newTestPipeline(fetcher, passthroughSanitizer{}, fieldsTokenizer{}, PipelineConfig{})
	o := newTestOrchestrator(pipeline, OrchestratorConfig{MaxURLs: 10})

	urls := make([]string, 11)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://inosmi.ru/%d.html", i)
	}

	cards, err := o.Process(context.Background(), urls, testCharged)
	require.Nil(t, cards)

	var tooMany *TooManyURLsError
	require.ErrorAs(t, err, &tooMany)
	require.Equal(t, 10, tooMany.Limit)
	require.Equal(t, 11, tooMany.Got)
	require.Equal(t, "too many urls in request, should be 10 or less", err.Error())
	require.Zero(t, fetcher.Calls())
}

func TestOrchestrator_RejectsEmptyBatch(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(funcRater(func(context.Context, string) entity.ArticleCard {
		t.Fatal("rater must not run")
		return entity.ArticleCard{}
	}), OrchestratorConfig{})

	_, err := o.Process(context.Background(), nil, testCharged)
	require.ErrorIs(t, err, ErrEmptyBatch)
}

func TestOrchestrator_DefaultLimit(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(funcRater(nil), OrchestratorConfig{})
	require.Equal(t, DefaultMaxURLs, o.MaxURLs())
	require.NoError(t, o.Admit(make([]string, DefaultMaxURLs)))
	require.Error(t, o.Admit(make([]string, DefaultMaxURLs+1)))
}

func TestOrchestrator_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// Earlier URLs finish later.
	urls := []string{"u0", "u1", "u2", "u3", "u4", "u0"}
	rater := funcRater(func(_ context.Context, url string) entity.ArticleCard {
		n := int(url[1] - '0')
		time.Sleep(time.Duration(5-n) * 10 * time.Millisecond)
		return entity.NewRatedCard(url, float64(n), n+1)
	})
	o := newTestOrchestrator(rater, OrchestratorConfig{MaxURLs: 10})

	cards, err := o.Process(context.Background(), urls, testCharged)
	require.NoError(t, err)
	require.Len(t, cards, len(urls))
	for i, card := range cards {
		require.Equal(t, urls[i], card.URL)
	}
	require.Equal(t, cards[0], cards[5])
}

func TestOrchestrator_RunsConcurrently(t *testing.T) {
	t.Parallel()

	const n = 8
	rater := funcRater(func(_ context.Context, url string) entity.ArticleCard {
		time.Sleep(100 * time.Millisecond)
		return entity.NewFailedCard(url, entity.StatusFetchError)
	})
	o := newTestOrchestrator(rater, OrchestratorConfig{MaxURLs: n})

	start := time.Now()
	_, err := o.Process(context.Background(), make([]string, n), testCharged)
	require.NoError(t, err)
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestOrchestrator_RespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	rater := funcRater(func(_ context.Context, url string) entity.ArticleCard {
		cur := running.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return entity.NewFailedCard(url, entity.StatusFetchError)
	})
	o := newTestOrchestrator(rater, OrchestratorConfig{MaxURLs: 10, MaxConcurrency: 2})

	cards, err := o.Process(context.Background(), make([]string, 10), testCharged)
	require.NoError(t, err)
	require.Len(t, cards, 10)
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestOrchestrator_MixedBatchIsolatesFailures(t *testing.T) {
	t.Parallel()

	const (
		good    = "https://inosmi.ru/good.html"
		broken  = "https://inosmi.ru/broken.html"
		unknown = "https://example.com/page"
		slow    = "https://inosmi.ru/slow.html"
	)
	fetcher := &stubFetcher{
		pages: map[string]string{
			good: "the crisis deepened into a disaster",
			slow: "crisis",
		},
		errs: map[string]error{
			broken: fmt.Errorf("%w: status 500", repository.ErrFetchFailed),
		},
		delays: map[string]time.Duration{slow: time.Second},
	}
	sanitizers := sanitizerBySite{"inosmi.ru": passthroughSanitizer{}}
	pipeline := NewArticlePipeline(fetcher, sanitizers, fieldsTokenizer{},
		PipelineConfig{FetchTimeout: 100 * time.Millisecond, AnalysisTimeout: time.Second}, zap.NewNop())
	o := newTestOrchestrator(pipeline, OrchestratorConfig{MaxURLs: 10})

	urls := []string{broken, good, unknown, slow, good}
	cards, err := o.Process(context.Background(), urls, testCharged)
	require.NoError(t, err)
	require.Len(t, cards, 5)

	want := []entity.ProcessingStatus{
		entity.StatusFetchError,
		entity.StatusOK,
		entity.StatusParsingError,
		entity.StatusTimeout,
		entity.StatusOK,
	}
	for i, card := range cards {
		require.Equal(t, urls[i], card.URL)
		require.Equal(t, want[i], card.Status, card.URL)
		require.Equal(t, card.Status == entity.StatusOK, card.Rating != nil)
		require.Equal(t, card.Status == entity.StatusOK, card.WordsNumber != nil)
	}
	require.Equal(t, 33.33, *cards[1].Rating)
	require.Equal(t, 6, *cards[1].WordsNumber)
}

func TestOrchestrator_BatchTimeout(t *testing.T) {
	t.Parallel()

	rater := funcRater(func(ctx context.Context, url string) entity.ArticleCard {
		if strings.HasSuffix(url, "fast") {
			return entity.NewRatedCard(url, 0, 1)
		}
		<-ctx.Done()
		return entity.NewFailedCard(url, entity.StatusTimeout)
	})
	o := newTestOrchestrator(rater, OrchestratorConfig{MaxURLs: 10, BatchTimeout: 50 * time.Millisecond})

	start := time.Now()
	cards, err := o.Process(context.Background(), []string{"fast", "stuck", "fast"}, testCharged)
	require.NoError(t, err)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, entity.StatusOK, cards[0].Status)
	require.Equal(t, entity.StatusTimeout, cards[1].Status)
	require.Equal(t, entity.StatusOK, cards[2].Status)
}

// sanitizerBySite resolves by host, like the real registry.
type sanitizerBySite map[string]repository.Sanitizer

func (s sanitizerBySite) Resolve(url string) (repository.Sanitizer, error) {
	for site, sanitizer := range s {
		if strings.Contains(url, "://"+site+"/") {
			return sanitizer, nil
		}
	}
	return nil, repository.ErrUnsupportedDocument
}

// Not parallel: reads the global articles_rated_total counter.
func TestOrchestrator_CountsEveryReturnedCard(t *testing.T) {
	metrics.Init()
	okBefore := testutil.ToFloat64(metrics.ArticlesRatedTotal.WithLabelValues(string(entity.StatusOK)))

	var calls atomic.Int32
	cached := NewCachedRater(countingRater(&calls, entity.StatusOK), newMemoryCache(), time.Hour, zap.NewNop())
	o := newTestOrchestrator(cached, OrchestratorConfig{MaxConcurrency: 1})

	cards, err := o.Process(context.Background(), []string{"u", "u", "u"}, testCharged)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	require.EqualValues(t, 1, calls.Load())

	okAfter := testutil.ToFloat64(metrics.ArticlesRatedTotal.WithLabelValues(string(entity.StatusOK)))
	require.Equal(t, 3.0, okAfter-okBefore)
}
