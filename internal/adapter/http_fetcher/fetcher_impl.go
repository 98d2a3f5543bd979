package http_fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/user/jaundice-service/internal/repository"
	"go.uber.org/zap"
)

const defaultMaxBodyBytes = 10 << 20

// Options tunes the HTTP fetcher. Zero values pick defaults.
type Options struct {
	MaxBodyBytes int64
	UserAgents   []string
	Transport    http.RoundTripper
}

// Fetcher downloads article pages with a plain HTTP GET.
type Fetcher struct {
	client       *http.Client
	userAgents   *userAgentPool
	maxBodyBytes int64
	logger       *zap.Logger
}

// NewFetcher creates an HTTP fetcher. It sets no client timeout: the
// deadline comes from the context of each Fetch call.
func NewFetcher(opts Options, logger *zap.Logger) *Fetcher {
	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ExpectContinueTimeout: time.Second,
		}
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Fetcher{
		client:       &http.Client{Transport: transport},
		userAgents:   newUserAgentPool(opts.UserAgents),
		maxBodyBytes: maxBody,
		logger:       logger.Named("http_fetcher"),
	}
}

var _ repository.FetcherRepository = (*Fetcher)(nil)

// Fetch implements repository.FetcherRepository.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", repository.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgents.next())
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return "", fmt.Errorf("%w: %s returned status %d", repository.ErrFetchFailed, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", classify(ctx, err)
	}

	f.logger.Debug("page fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)
	return string(body), nil
}

// classify maps a transport error to a stage error. Deadline expiry and
// cancellation of ctx both count as a timeout.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", repository.ErrFetchTimeout, ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", repository.ErrFetchTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", repository.ErrFetchTimeout, err)
	}
	return fmt.Errorf("%w: %w", repository.ErrFetchFailed, err)
}
