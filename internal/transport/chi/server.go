// Package chi is the HTTP surface: the search endpoint, the ingest endpoints
// that keep the catalog projection current, and the health/metrics routes.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vietbites/discovery/internal/domain"
	"github.com/vietbites/discovery/internal/domain/restaurant"
	"github.com/vietbites/discovery/internal/domain/search/query"
	"github.com/vietbites/discovery/internal/domain/search/sortby"
	searchuc "github.com/vietbites/discovery/internal/usecase/search"
)

const maxBatchSize = 100

// Error codes returned in the response body.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeNotFound           = "not_found"
	codeCatalogUnavailable = "catalog_unavailable"
	codeGeocodingError     = "geocoding_provider_error"
	codeInternalError      = "internal_error"
)

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Ingest is the write side of the catalog projection.
type Ingest interface {
	Save(ctx context.Context, rec *restaurant.Restaurant) error
	SaveAll(ctx context.Context, recs []restaurant.Restaurant) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires use cases to HTTP routes.
type Server struct {
	search          *searchuc.Service
	ingest          Ingest
	logger          *zap.Logger
	clock           func() time.Time
	defaultPageSize int
	maxPageSize     int
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, ingest Ingest, logger *zap.Logger) *Server {
	s := &Server{
		search:          search,
		ingest:          ingest,
		logger:          logger,
		clock:           time.Now,
		defaultPageSize: query.DefaultPageSize,
		maxPageSize:     query.MaxPageSize,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
		sentinelHandler(domain.ErrGeocodingProviderError, http.StatusBadGateway, codeGeocodingError),
	}
	return s
}

// WithPagination overrides the default and maximum page size.
func (s *Server) WithPagination(defaultPageSize, maxPageSize int) *Server {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.handleSearch)
	r.Put("/api/v1/restaurants/{id}", s.handleUpsertRestaurant)
	r.Post("/api/v1/restaurants/batch", s.handleBatchUpsert)
	r.Delete("/api/v1/restaurants/{id}", s.handleDeleteRestaurant)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// handleSearch handles GET /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := s.searchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	q, err := query.NewWithLimits(params, s.defaultPageSize, s.maxPageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, resolution, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToPayload(&page, resolution))
}

// searchParams parses the search query string into raw pipeline parameters.
func (s *Server) searchParams(r *http.Request) (query.Params, error) {
	vals := r.URL.Query()
	p := query.Params{
		Text:         vals.Get("q"),
		LocationText: vals.Get("location"),
		CuisineIDs:   splitCSV(vals.Get("cuisines")),
		TagIDs:       splitCSV(vals.Get("tags")),
		Sort:         sortby.Strategy(vals.Get("sort")),
	}

	var err error
	if p.Latitude, err = optionalFloat(vals.Get("lat"), "lat"); err != nil {
		return query.Params{}, err
	}
	if p.Longitude, err = optionalFloat(vals.Get("lon"), "lon"); err != nil {
		return query.Params{}, err
	}
	if radius, err := optionalFloat(vals.Get("radius_km"), "radius_km"); err != nil {
		return query.Params{}, err
	} else if radius != nil {
		p.RadiusKm = *radius
	}
	if p.MinPrice, err = optionalFloat(vals.Get("min_price"), "min_price"); err != nil {
		return query.Params{}, err
	}
	if p.MaxPrice, err = optionalFloat(vals.Get("max_price"), "max_price"); err != nil {
		return query.Params{}, err
	}
	if p.MinRating, err = optionalFloat(vals.Get("min_rating"), "min_rating"); err != nil {
		return query.Params{}, err
	}

	if v := vals.Get("open_now"); v != "" {
		openNow, err := strconv.ParseBool(v)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid open_now %q", v)
		}
		p.OpenNow = openNow
	}
	if p.OpenNow {
		p.Now = s.clock()
		if at := vals.Get("at"); at != "" {
			ts, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return query.Params{}, fmt.Errorf("invalid at %q, want RFC3339", at)
			}
			p.Now = ts
		}
	}

	if v := vals.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid page %q", v)
		}
		p.Page = page
	}
	if v := vals.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return query.Params{}, fmt.Errorf("invalid page_size %q", v)
		}
		if size <= 0 {
			return query.Params{}, fmt.Errorf("page_size must be positive")
		}
		p.PageSize = size
	}

	return p, nil
}

// handleUpsertRestaurant handles PUT /api/v1/restaurants/{id}.
func (s *Server) handleUpsertRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload restaurantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rec, err := restaurantFromPayload(id, payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	if err := s.ingest.Save(r.Context(), &rec); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/restaurants/"+id)
	w.WriteHeader(http.StatusNoContent)
}

// handleBatchUpsert handles POST /api/v1/restaurants/batch.
func (s *Server) handleBatchUpsert(w http.ResponseWriter, r *http.Request) {
	var payload batchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(payload.Restaurants) == 0 || len(payload.Restaurants) > maxBatchSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("restaurants count must be between 1 and %d", maxBatchSize))
		return
	}

	recs := make([]restaurant.Restaurant, 0, len(payload.Restaurants))
	for id, item := range payload.Restaurants {
		rec, err := restaurantFromPayload(id, item)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				fmt.Sprintf("restaurant %q: %s", id, err))
			return
		}
		recs = append(recs, rec)
	}

	if err := s.ingest.SaveAll(r.Context(), recs); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"saved": len(recs)})
}

// handleDeleteRestaurant handles DELETE /api/v1/restaurants/{id}.
func (s *Server) handleDeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.ingest.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health. Degraded when the catalog is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.ingest.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"checks": map[string]string{"catalog": "unhealthy"},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"checks":           map[string]string{"catalog": "healthy"},
		"restaurant_count": count,
	})
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionalFloat(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, s)
	}
	return &f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrCatalogUnavailable,
		domain.ErrGeocodingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
