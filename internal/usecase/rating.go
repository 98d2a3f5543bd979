package usecase

import (
	"fmt"
	"math"

	"github.com/user/jaundice-service/internal/entity"
	"github.com/user/jaundice-service/internal/repository"
)

// RatingPrecision is the number of decimals kept in a jaundice rate.
const RatingPrecision = 2

// CalculateRating returns the share of charged words in words as a
// percentage rounded to RatingPrecision decimals, together with the word
// count. An empty input yields repository.ErrNoWords.
func CalculateRating(words []string, charged *entity.ChargedWordSet) (float64, int, error) {
	total := len(words)
	if total == 0 {
		return 0, 0, fmt.Errorf("%w: nothing to score", repository.ErrNoWords)
	}

	matches := 0
	for _, w := range words {
		if charged.Contains(w) {
			matches++
		}
	}

	rate := 100 * float64(matches) / float64(total)
	return roundTo(rate, RatingPrecision), total, nil
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
