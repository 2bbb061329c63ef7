package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/talentgrid/resumatch/internal/domain"
	"github.com/talentgrid/resumatch/internal/domain/batch"
	"github.com/talentgrid/resumatch/internal/domain/search/filter"
	"github.com/talentgrid/resumatch/internal/domain/search/match"
	healthuc "github.com/talentgrid/resumatch/internal/usecase/health"
	ingestuc "github.com/talentgrid/resumatch/internal/usecase/ingest"
	searchuc "github.com/talentgrid/resumatch/internal/usecase/search"
)

// Error codes returned in error response bodies.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeInvalidFilter        = "invalid_filter"
	codeResumeNotFound       = "resume_not_found"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeStoreUnavailable     = "store_unavailable"
	codeInternalError        = "internal_error"
)

// ResumeStore is the per-resume read/delete contract (served by the repository).
type ResumeStore interface {
	Get(ctx context.Context, id string) (domain.ResumeRecord, error)
	Delete(ctx context.Context, id string) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the resume matching API over HTTP.
type Server struct {
	search        *searchuc.Service
	ingest        *ingestuc.Service
	resumes       ResumeStore
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	ingest *ingestuc.Service,
	resumes ResumeStore,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		ingest:  ingest,
		resumes: resumes,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, codeInvalidFilter),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrResumeNotFound, http.StatusNotFound, codeResumeNotFound),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingUnavailable),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
	}
	return s
}

// Routes registers all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/search", s.SearchResumes)
	r.Post("/v1/resumes", s.IngestResumes)
	r.Get("/v1/resumes/{id}", s.GetResume)
	r.Delete("/v1/resumes/{id}", s.DeleteResume)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequest struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters,omitempty"`
	TopK    int            `json:"top_k,omitempty"`
	// MinScore narrows this request below the configured floor; it can
	// never lower the floor itself.
	MinScore float64 `json:"min_score,omitempty"`
}

type matchItem struct {
	ID      string   `json:"id"`
	Score   float64  `json:"score"`
	Role    string   `json:"role"`
	Years   float64  `json:"years"`
	Skills  []string `json:"skills"`
	Summary string   `json:"summary"`
}

type searchResponse struct {
	Matches []matchItem `json:"matches"`
	Total   int         `json:"total"`
}

// SearchResumes handles POST /v1/search.
func (s *Server) SearchResumes(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := filter.FromMap(req.Filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if req.TopK < 0 || req.TopK > searchuc.MaxTopK {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			fmt.Sprintf("top_k must be between 1 and %d", searchuc.MaxTopK))
		return
	}
	if req.MinScore < 0 || req.MinScore > 1 {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"min_score must be between 0 and 1")
		return
	}

	matches, err := s.search.Query(r.Context(), req.Query, filters, req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]matchItem, 0, len(matches))
	for i := range matches {
		if matches[i].Score() < req.MinScore {
			continue
		}
		items = append(items, matchToItem(&matches[i]))
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Matches: items,
		Total:   len(items),
	})
}

type ingestRequest struct {
	Resumes []json.RawMessage `json:"resumes"`
}

type ingestResultItem struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type ingestResponse struct {
	Results   []ingestResultItem `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// IngestResumes handles POST /v1/resumes.
// Records are decoded one by one so a malformed record fails alone
// instead of aborting the whole batch.
func (s *Server) IngestResumes(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Resumes) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "resumes must not be empty")
		return
	}

	results := make([]batch.Result, len(req.Resumes))

	records := make([]domain.ResumeRecord, 0, len(req.Resumes))
	positions := make([]int, 0, len(req.Resumes))
	for i, raw := range req.Resumes {
		var rec domain.ResumeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			results[i] = batch.NewFailed(peekID(raw),
				fmt.Errorf("malformed record: %w", domain.ErrInvalidRecord))
			continue
		}
		records = append(records, rec)
		positions = append(positions, i)
	}

	for i, res := range s.ingest.Ingest(r.Context(), records) {
		results[positions[i]] = res
	}

	succeeded, failed := 0, 0
	items := make([]ingestResultItem, len(results))
	for i, res := range results {
		items[i] = ingestResultToItem(res)
		if res.OK() {
			succeeded++
		} else {
			failed++
		}
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		Results:   items,
		Succeeded: succeeded,
		Failed:    failed,
	})
}

// GetResume handles GET /v1/resumes/{id}.
func (s *Server) GetResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.resumes.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// DeleteResume handles DELETE /v1/resumes/{id}.
func (s *Server) DeleteResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.resumes.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
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

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func matchToItem(m *match.Result) matchItem {
	return matchItem{
		ID:      m.ID(),
		Score:   m.Score(),
		Role:    m.Role(),
		Years:   m.Years(),
		Skills:  m.Skills(),
		Summary: m.Summary(),
	}
}

func ingestResultToItem(res batch.Result) ingestResultItem {
	item := ingestResultItem{ID: res.ID(), Status: "ok"}
	if res.Err() != nil {
		item.Status = "failed"
		item.Error = safeDomainMessage(res.Err())
	}
	return item
}

// peekID extracts the id field from a raw record for error reporting.
func peekID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ID
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidFilter,
		domain.ErrInvalidRecord,
		domain.ErrResumeNotFound,
		domain.ErrEmbeddingUnavailable,
		domain.ErrStoreUnavailable,
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
