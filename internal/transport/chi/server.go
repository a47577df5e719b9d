package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kartgeo/crsdex/internal/domain"
	"github.com/kartgeo/crsdex/internal/domain/search/query"
	"github.com/kartgeo/crsdex/internal/domain/search/result"
	healthuc "github.com/kartgeo/crsdex/internal/usecase/health"
	searchuc "github.com/kartgeo/crsdex/internal/usecase/search"
)

// ErrorCode identifies an error class in API responses.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeNotFound         ErrorCode = "not_found"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body for all error statuses.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResultItem is one ranked CRS hit in a search response.
type SearchResultItem struct {
	SRID           int     `json:"srid"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Relevance      float64 `json:"relevance"`
	PriorityLevel  int     `json:"priority_level"`
	FoundByVariant string  `json:"found_by_variant,omitempty"`
}

// SearchResponse is the body for GET /api/v1/search.
type SearchResponse struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []SearchResultItem `json:"results"`
}

// HealthResponse is the body for GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search use case over HTTP.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
	}
	return s
}

// Routes mounts all API endpoints onto r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/v1/search", s.Search)
	r.Get("/api/v1/crs/{srid}", s.GetCRS)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /api/v1/search?q=&srid=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	text := params.Get("q")

	var filters query.Filters
	if raw := params.Get("srid"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "srid must be a boolean")
			return
		}
		filters.SRIDSearch = v
	}

	limit := 0
	if raw := params.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be an integer")
			return
		}
		limit = v
	}

	q, err := query.New(text, filters, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:   text,
		Count:   len(results),
		Results: resultsToItems(results),
	})
}

// GetCRS handles GET /api/v1/crs/{srid}.
func (s *Server) GetCRS(w http.ResponseWriter, r *http.Request) {
	srid, err := strconv.Atoi(chi.URLParam(r, "srid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "srid must be an integer")
		return
	}

	res, err := s.search.GetDetails(r.Context(), srid)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToItem(&res))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
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
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func resultsToItems(results []result.Result) []SearchResultItem {
	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}
	return items
}

func resultToItem(r *result.Result) SearchResultItem {
	return SearchResultItem{
		SRID:           r.SRID(),
		Name:           r.Name(),
		Description:    r.Description(),
		Relevance:      r.Relevance(),
		PriorityLevel:  r.PriorityLevel(),
		FoundByVariant: r.FoundByVariant(),
	}
}
