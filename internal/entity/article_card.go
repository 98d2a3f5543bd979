package entity

// ArticleCard is the per-URL result returned to clients.
// Rating and WordsNumber are set only when Status is StatusOK.
type ArticleCard struct {
	URL         string           `json:"url" yaml:"url"`
	Status      ProcessingStatus `json:"status" yaml:"status"`
	Rating      *float64         `json:"rating" yaml:"rating"`
	WordsNumber *int             `json:"words_number" yaml:"words_number"`
}

// NewRatedCard builds a successful card.
func NewRatedCard(url string, rating float64, wordsNumber int) ArticleCard {
	return ArticleCard{
		URL:         url,
		Status:      StatusOK,
		Rating:      &rating,
		WordsNumber: &wordsNumber,
	}
}

// NewFailedCard builds a card for any non-OK outcome.
func NewFailedCard(url string, status ProcessingStatus) ArticleCard {
	return ArticleCard{URL: url, Status: status}
}
