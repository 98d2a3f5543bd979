package response

import (
	"time"

	"github.com/user/jaundice-service/internal/entity"
)

// RateResponse wraps a rated batch for the /api/rate endpoint.
type RateResponse struct {
	BatchID  string               `json:"batch_id"`
	Articles []entity.ArticleCard `json:"articles"`
}

// HistoryEntry is one stored rating of a URL.
type HistoryEntry struct {
	BatchID     string                  `json:"batch_id"`
	Status      entity.ProcessingStatus `json:"status"`
	Rating      *float64                `json:"rating"`
	WordsNumber *int                    `json:"words_number"`
	RatedAt     time.Time               `json:"rated_at"`
}

type HistoryResponse struct {
	URL     string         `json:"url"`
	Ratings []HistoryEntry `json:"ratings"`
}

type HealthResponse struct {
	Status       string            `json:"status"`
	ChargedWords int               `json:"charged_words"`
	MaxURLs      int               `json:"max_urls"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// NewHistoryResponse converts stored records into the response shape.
func NewHistoryResponse(url string, records []*entity.RatingRecord) HistoryResponse {
	resp := HistoryResponse{URL: url, Ratings: make([]HistoryEntry, 0, len(records))}
	for _, rec := range records {
		resp.Ratings = append(resp.Ratings, HistoryEntry{
			BatchID:     rec.BatchID,
			Status:      rec.Status,
			Rating:      rec.Rating,
			WordsNumber: rec.WordsNumber,
			RatedAt:     rec.RatedAt,
		})
	}
	return resp
}
