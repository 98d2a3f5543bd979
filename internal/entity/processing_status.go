package entity

// ProcessingStatus is the terminal outcome of rating a single article.
type ProcessingStatus string

const (
	StatusOK           ProcessingStatus = "OK"
	StatusFetchError   ProcessingStatus = "FETCH_ERROR"
	StatusParsingError ProcessingStatus = "PARSING_ERROR"
	StatusTimeout      ProcessingStatus = "TIMEOUT"
)

// IsValid reports whether s is one of the known statuses.
func (s ProcessingStatus) IsValid() bool {
	switch s {
	case StatusOK, StatusFetchError, StatusParsingError, StatusTimeout:
		return true
	}
	return false
}

func (s ProcessingStatus) String() string {
	return string(s)
}
