package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
)

// passthroughSanitizer returns the document unchanged.
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(_, html string) (string, error) { return html, nil }

// rejectingSanitizer recognizes no document.
type rejectingSanitizer struct{}

func (rejectingSanitizer) Sanitize(url, _ string) (string, error) {
	return "", fmt.Errorf("%w: %s", repository.ErrUnsupportedDocument, url)
}

// panickingSanitizer simulates a parser bug.
type panickingSanitizer struct{}

func (panickingSanitizer) Sanitize(string, string) (string, error) { panic("boom") }

// staticRegistry always resolves to the same sanitizer.
type staticRegistry struct {
	sanitizer repository.Sanitizer
}

func (r staticRegistry) Resolve(string) (repository.Sanitizer, error) {
	if r.sanitizer == nil {
		return nil, repository.ErrUnsupportedDocument
	}
	return r.sanitizer, nil
}

// fieldsTokenizer splits on whitespace without normalization.
type fieldsTokenizer struct {
	delay time.Duration
}

func (t fieldsTokenizer) Tokenize(ctx context.Context, text string) ([]string, error) {
	if t.delay > 0 {
		select {
		case <-time.After(t.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", repository.ErrAnalysisTimeout, ctx.Err())
		}
	}
	return strings.Fields(text), nil
}

// stubFetcher returns canned pages or errors per URL, optionally after a
// delay, and counts calls.
type stubFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	delays map[string]time.Duration
	calls  int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls++
	page, hasPage := f.pages[url]
	err := f.errs[url]
	delay := f.delays[url]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", repository.ErrFetchTimeout, ctx.Err())
		}
	}
	if err != nil {
		return "", err
	}
	if !hasPage {
		return "", fmt.Errorf("%w: no page for %s", repository.ErrFetchFailed, url)
	}
	return page, nil
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// funcRater adapts a function to ArticleRater.
type funcRater func(ctx context.Context, url string) entity.ArticleCard

func (f funcRater) Rate(ctx context.Context, url string, _ *entity.ChargedWordSet) entity.ArticleCard {
	return f(ctx, url)
}

// memoryCache is an in-process CardCacheRepository.
type memoryCache struct {
	mu     sync.Mutex
	cards  map[string]entity.ArticleCard
	getErr error
	puts   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{cards: make(map[string]entity.ArticleCard)}
}

func (c *memoryCache) Get(_ context.Context, fingerprint, url string) (entity.ArticleCard, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return entity.ArticleCard{}, c.getErr
	}
	card, ok := c.cards[fingerprint+"|"+url]
	if !ok {
		return entity.ArticleCard{}, repository.ErrCacheMiss
	}
	return card, nil
}

func (c *memoryCache) Put(_ context.Context, fingerprint string, card entity.ArticleCard, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.cards[fingerprint+"|"+card.URL] = card
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

// memoryHistory is an in-process RatingRepository.
type memoryHistory struct {
	mu      sync.Mutex
	batches map[string][]entity.ArticleCard
	saveErr error
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{batches: make(map[string][]entity.ArticleCard)}
}

func (h *memoryHistory) SaveBatch(_ context.Context, batchID string, cards []entity.ArticleCard) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.saveErr != nil {
		return h.saveErr
	}
	h.batches[batchID] = append([]entity.ArticleCard(nil), cards...)
	return nil
}

func (h *memoryHistory) FindByURL(_ context.Context, url string, limit int) ([]*entity.RatingRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*entity.RatingRecord
	for id, cards := range h.batches {
		for _, c := range cards {
			if c.URL == url && len(out) < limit {
				out = append(out, &entity.RatingRecord{BatchID: id, URL: c.URL, Status: c.Status, Rating: c.Rating, WordsNumber: c.WordsNumber})
			}
		}
	}
	if len(out) == 0 {
		return nil, repository.ErrNotFound
	}
	return out, nil
}

func (h *memoryHistory) Ping(context.Context) error { return nil }

// sliceSource is a ChargedWordSource over a fixed list.
type sliceSource struct {
	words []string
	err   error
}

func (s sliceSource) LoadWords(context.Context) ([]string, error) { return s.words, s.err }
