package entity

import "time"

// RatingRecord mirrors the `article_ratings` PostgreSQL table schema.
type RatingRecord struct {
	ID          int64
	BatchID     string
	URL         string
	Status      ProcessingStatus
	Rating      *float64
	WordsNumber *int
	RatedAt     time.Time
}

// Card converts a stored record back into the client-facing shape.
func (r *RatingRecord) Card() ArticleCard {
	return ArticleCard{
		URL:         r.URL,
		Status:      r.Status,
		Rating:      r.Rating,
		WordsNumber: r.WordsNumber,
	}
}
