package repository

import "context"

// Tokenizer splits plain text into normalized word forms.
type Tokenizer interface {
	// Tokenize returns words in text order. It stops with ErrAnalysisTimeout
	// once ctx is done.
	Tokenize(ctx context.Context, text string) ([]string, error)
}
