package repository

import "errors"

// Stage errors. Adapters wrap these with %w so the pipeline can classify a
// failure into a processing status with errors.Is.
var (
	// ErrFetchFailed covers network, DNS and non-2xx HTTP failures.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrFetchTimeout means the fetch deadline expired before the body was read.
	ErrFetchTimeout = errors.New("fetch timed out")
	// ErrUnsupportedDocument means no sanitizer recognized the page layout.
	ErrUnsupportedDocument = errors.New("document not recognized")
	// ErrAnalysisTimeout means tokenization ran past its deadline.
	ErrAnalysisTimeout = errors.New("analysis timed out")
	// ErrNoWords means the extracted text produced no countable words.
	ErrNoWords = errors.New("no words in article text")

	// ErrCacheMiss is returned by a CardCache when nothing is stored for a URL.
	ErrCacheMiss = errors.New("card not cached")
	// ErrNotFound is returned by stores when a lookup yields nothing.
	ErrNotFound = errors.New("not found")
)
