package repository

import "context"

// ChargedWordSource yields raw (not yet normalized) charged words.
type ChargedWordSource interface {
	LoadWords(ctx context.Context) ([]string, error)
}
