package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/user/jaundice-service/internal/delivery/http/request"
	"github.com/user/jaundice-service/internal/delivery/http/response"
	"github.com/user/jaundice-service/internal/repository"
	"github.com/user/jaundice-service/internal/usecase"
	"github.com/user/jaundice-service/pkg/utils"
	"go.uber.org/zap"
)

const (
	healthCheckTimeout = 2 * time.Second
	maxRequestBody     = 64 << 10
)

// Pinger is any dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	rating usecase.RatingService
	deps   map[string]Pinger
	logger *zap.Logger
}

// NewHandler creates the HTTP handler. deps lists optional dependencies
// reported by the health check, keyed by name.
func NewHandler(rating usecase.RatingService, deps map[string]Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		rating: rating,
		deps:   deps,
		logger: logger.Named("http"),
	}
}

// HandleRateQuery serves GET /?urls=a,b and answers with a bare JSON array
// of cards in request order.
func (h *Handler) HandleRateQuery(w http.ResponseWriter, r *http.Request) {
	urls, ok := h.urlsFromQuery(w, r)
	if !ok {
		return
	}
	result, ok := h.rate(w, r, urls)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, result.Cards)
}

// HandleRate serves GET /api/rate?urls=... and POST /api/rate with a JSON
// body, answering with the batch id alongside the cards.
func (h *Handler) HandleRate(w http.ResponseWriter, r *http.Request) {
	var urls []string
	if r.Method == http.MethodPost {
		var req request.RateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		for _, u := range req.URLs {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
		if len(urls) == 0 {
			h.writeJSONError(w, "urls list cannot be empty", http.StatusBadRequest)
			return
		}
	} else {
		var ok bool
		if urls, ok = h.urlsFromQuery(w, r); !ok {
			return
		}
	}

	result, ok := h.rate(w, r, urls)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, response.RateResponse{
		BatchID:  result.BatchID,
		Articles: result.Cards,
	})
}

func (h *Handler) urlsFromQuery(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var urls []string
	for _, raw := range r.URL.Query()["urls"] {
		urls = append(urls, utils.SplitURLs(raw)...)
	}
	if len(urls) == 0 {
		h.writeJSONError(w, "urls query parameter is required", http.StatusBadRequest)
		return nil, false
	}
	return urls, true
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request, urls []string) (*usecase.BatchResult, bool) {
	result, err := h.rating.Rate(r.Context(), urls)
	if err == nil {
		return result, true
	}

	var tooMany *usecase.TooManyURLsError
	switch {
	case errors.As(err, &tooMany):
		h.writeJSONError(w, tooMany.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmptyBatch):
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("failed to rate batch", zap.Strings("urls", urls), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
	return nil, false
}

// HandleHistory serves GET /api/ratings?url=...&limit=N.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if rawURL == "" {
		h.writeJSONError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.rating.History(r.Context(), rawURL, limit)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, response.NewHistoryResponse(rawURL, records))
	case errors.Is(err, usecase.ErrHistoryDisabled):
		h.writeJSONError(w, err.Error(), http.StatusNotImplemented)
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSONError(w, "No ratings stored for the given URL", http.StatusNotFound)
	default:
		h.logger.Error("failed to load rating history", zap.String("url", rawURL), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// HandleHealthCheck serves GET /api/health.
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := response.HealthResponse{
		Status:       "ok",
		ChargedWords: h.rating.ChargedWords(),
		MaxURLs:      h.rating.MaxURLs(),
	}
	code := http.StatusOK

	if len(h.deps) > 0 {
		resp.Dependencies = make(map[string]string, len(h.deps))
		for name, dep := range h.deps {
			if err := dep.Ping(ctx); err != nil {
				h.logger.Error("health check failed", zap.String("dependency", name), zap.Error(err))
				resp.Dependencies[name] = "unhealthy"
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = "healthy"
		}
	}

	h.writeJSON(w, code, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
