package repository

import "context"

// FetcherRepository retrieves the raw HTML of an article page.
type FetcherRepository interface {
	// Fetch issues a single request for url. The deadline carried by ctx bounds
	// the whole exchange, body included.
	Fetch(ctx context.Context, url string) (string, error)
}
