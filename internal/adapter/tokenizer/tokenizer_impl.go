package tokenizer

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/russian"
	"github.com/user/jaundice-service/internal/repository"
)

const (
	DefaultChunkSize = 512

	// Short forms carry no meaning for scoring, except for the negation.
	minWordRunes = 3
	negation     = "не"
)

// RussianTokenizer normalizes words with the Snowball Russian stemmer.
// It holds no mutable state and is shared by all pipelines.
type RussianTokenizer struct {
	chunkSize int
}

// NewRussianTokenizer creates a tokenizer that checks its context every
// chunkSize words.
func NewRussianTokenizer(chunkSize int) *RussianTokenizer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &RussianTokenizer{chunkSize: chunkSize}
}

var _ repository.Tokenizer = (*RussianTokenizer)(nil)

// Tokenize implements repository.Tokenizer.
func (t *RussianTokenizer) Tokenize(ctx context.Context, text string) ([]string, error) {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))

	for start := 0; start < len(fields); start += t.chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w after %d of %d words: %w", repository.ErrAnalysisTimeout, start, len(fields), err)
		}

		end := min(start+t.chunkSize, len(fields))
		for _, field := range fields[start:end] {
			if word, ok := Normalize(field); ok {
				words = append(words, word)
			}
		}

		// Let sibling pipelines run between chunks of CPU-bound work.
		runtime.Gosched()
	}
	return words, nil
}

// Normalize cleans a raw token and reduces it to its stem. ok is false when
// the token should not be counted.
func Normalize(token string) (string, bool) {
	word := strings.ToLower(strings.TrimFunc(token, isNotWordRune))
	word = strings.ReplaceAll(word, "ё", "е")
	if word == "" {
		return "", false
	}

	stem := russian.Stem(word, false)
	if utf8.RuneCountInString(stem) < minWordRunes && stem != negation {
		return "", false
	}
	return stem, true
}

func isNotWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
