package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
	logpkg "github.com/kailas-cloud/partsdex/internal/logger"
	healthuc "github.com/kailas-cloud/partsdex/internal/usecase/health"
)

// CatalogService is the catalog use case consumed by the HTTP handlers.
type CatalogService interface {
	SearchProducts(ctx context.Context, c criteria.Criteria) ([]domain.Record, error)
	GetProduct(ctx context.Context, id string) (*domain.Record, error)
	ListMakes(ctx context.Context, term string) ([]string, error)
	ListModels(ctx context.Context, mk, term string) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
	YearRange(ctx context.Context, mk string) (domain.YearRange, error)
	Suggestions(ctx context.Context, term string) ([]string, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the catalog API.
type Server struct {
	catalog       CatalogService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(catalog CatalogService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		catalog: catalog,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r gochi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r gochi.Router) {
		r.Get("/products", s.SearchProducts)
		r.Get("/products/{id}", s.GetProduct)
		r.Get("/makes", s.ListMakes)
		r.Get("/models", s.ListModels)
		r.Get("/years-range", s.YearRange)
		r.Get("/categories", s.ListCategories)
		r.Get("/suggestions", s.Suggestions)
	})
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchProducts handles GET /api/products.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	c, err := productParams(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	recs, err := s.catalog.SearchProducts(r.Context(), c)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// GetProduct handles GET /api/products/{id}. A missing record is a 200 with a null body.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	rec, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListMakes handles GET /api/makes.
func (s *Server) ListMakes(w http.ResponseWriter, r *http.Request) {
	term, err := stringOrEmpty(queryParams(r), "term")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	makes, err := s.catalog.ListMakes(r.Context(), term)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, makes)
}

// ListModels handles GET /api/models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	q := queryParams(r)
	mk, err := stringOrEmpty(q, "make")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	term, err := stringOrEmpty(q, "term")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	models, err := s.catalog.ListModels(r.Context(), mk, term)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models)
}

// YearRange handles GET /api/years-range.
func (s *Server) YearRange(w http.ResponseWriter, r *http.Request) {
	mk, err := stringOrEmpty(queryParams(r), "make")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	yr, err := s.catalog.YearRange(r.Context(), mk)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, YearRangeResponse{MinYear: yr.MinYear, MaxYear: yr.MaxYear})
}

// ListCategories handles GET /api/categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Suggestions handles GET /api/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	term, err := stringOrEmpty(queryParams(r), "term")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out, err := s.catalog.Suggestions(r.Context(), term)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
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

// safeDomainMessage returns a client-safe message without exposing internals.
// Validation errors carry only the parameter name and reason.
func safeDomainMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if errors.Is(err, domain.ErrValidation) {
		return domain.ErrValidation.Error()
	}
	return "internal error"
}

// validationHandler maps ErrValidation to 400.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
