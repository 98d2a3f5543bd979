package request

// RateRequest is the JSON body accepted by POST /api/rate.
type RateRequest struct {
	URLs []string `json:"urls"`
}
