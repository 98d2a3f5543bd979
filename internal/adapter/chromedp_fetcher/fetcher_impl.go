package chromedp_fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/jaundice-service/internal/repository"
	"go.uber.org/zap"
)

const defaultUserAgent = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36`

// Fetcher loads pages in a shared headless Chrome, one tab per Fetch. Use it
// for sites that only render article markup with JavaScript.
type Fetcher struct {
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
	logger        *zap.Logger
}

// NewFetcher starts the browser process. Close must be called to stop it.
func NewFetcher(userAgent string, logger *zap.Logger) (*Fetcher, error) {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger = logger.Named("chromedp_fetcher")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))

	// An empty Run starts the browser so that start-up errors surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start headless browser: %w", err)
	}

	return &Fetcher{
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
		logger:        logger,
	}, nil
}

var _ repository.FetcherRepository = (*Fetcher)(nil)

// Fetch implements repository.FetcherRepository.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	// The tab lives under the browser context, so tie it to the caller's
	// deadline explicitly.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	doc := &documentStatus{}
	chromedp.ListenTarget(tabCtx, doc.observe)

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", classify(ctx, err)
	}

	if status, ok := doc.get(); ok && (status < 200 || status > 299) {
		return "", fmt.Errorf("%w: %s returned status %d", repository.ErrFetchFailed, url, status)
	}

	f.logger.Debug("page rendered", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}

// Close stops the browser.
func (f *Fetcher) Close() {
	f.cancelBrowser()
	f.cancelAlloc()
}

// documentStatus captures the HTTP status of the main document, which
// chromedp does not report from Navigate.
type documentStatus struct {
	mu     sync.Mutex
	status int64
	seen   bool
}

func (d *documentStatus) observe(ev interface{}) {
	resp, ok := ev.(*network.EventResponseReceived)
	if !ok || resp.Type != network.ResourceTypeDocument {
		return
	}
	// The navigation request shares its id with the loader.
	if string(resp.RequestID) != string(resp.LoaderID) {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.seen {
		d.status = resp.Response.Status
		d.seen = true
	}
}

func (d *documentStatus) get() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status, d.seen
}

func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", repository.ErrFetchTimeout, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", repository.ErrFetchTimeout, err)
	}
	return fmt.Errorf("%w: %w", repository.ErrFetchFailed, err)
}
