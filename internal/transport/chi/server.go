package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/document"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
)

const maxBodyBytes = 10 << 20

// Server serves the /search HTTP API.
type Server struct {
	search    SearchService
	readiness ReadinessChecker
	pipeline  PipelineRunner
	logger    *zap.Logger
}

// NewServer creates an HTTP API server. readiness and pipeline can be nil.
func NewServer(
	search SearchService,
	readiness ReadinessChecker,
	pipeline PipelineRunner,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		search:    search,
		readiness: readiness,
		pipeline:  pipeline,
		logger:    logger,
	}
}

// Register mounts all routes on r.
func (s *Server) Register(r chi.Router) {
	r.Route("/search", func(r chi.Router) {
		r.Post("/semantic", s.SemanticSearch)
		r.Post("/semantic/raw", s.SemanticSearchRaw)
		r.Post("/documents", s.StoreDocuments)
		r.Post("/delete", s.DeleteDocuments)
		r.Get("/health", s.HealthCheck)
		r.Get("/health/ready", s.ReadinessCheck)
		r.Post("/demo", s.DemoSearch)
		r.Post("/process", s.ProcessData)
		r.Post("/process-data", s.ProcessData)
	})
	r.Get("/metrics", s.Metrics)
}

// SemanticSearch handles POST /search/semantic. Results carry titles.
func (s *Server) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	s.semanticSearch(w, r, true)
}

// SemanticSearchRaw handles POST /search/semantic/raw. Results carry no titles.
func (s *Server) SemanticSearchRaw(w http.ResponseWriter, r *http.Request) {
	s.semanticSearch(w, r, false)
}

func (s *Server) semanticSearch(w http.ResponseWriter, r *http.Request, enrich bool) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	results, err := s.search.SemanticSearch(ctx, req.Query, deref(req.TopK), deref(req.Threshold), enrich)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, resultsToItems(results))
}

// StoreDocuments handles POST /search/documents.
func (s *Server) StoreDocuments(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if !s.decode(w, r, &req) {
		return
	}

	docs := make([]document.Document, len(req.Documents))
	for i, d := range req.Documents {
		if d.Text == "" {
			writeError(w, http.StatusBadRequest, CodeValidationFailed,
				fmt.Sprintf("documents[%d].text is required", i))
			return
		}
		docs[i] = document.New(d.Text, d.Metadata)
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.search.StoreDocuments(ctx, docs)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, writeResultToResponse(res))
}

// DeleteDocuments handles POST /search/delete.
func (s *Server) DeleteDocuments(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.search.DeleteDocuments(r.Context(), req.IDs)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, writeResultToResponse(res))
}

// HealthCheck handles GET /search/health.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h := s.search.Health()
	writeJSON(w, http.StatusOK, healthResponse{Status: h.Status, Message: h.Message})
}

// ReadinessCheck handles GET /search/health/ready.
func (s *Server) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if s.readiness == nil {
		writeJSON(w, http.StatusOK, readinessResponse{Status: string(healthuc.Ready), Checks: map[string]string{}})
		return
	}

	report := s.readiness.Check(r.Context())
	status := http.StatusOK
	if !report.Ready() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, readinessToResponse(report))
}

// DemoSearch handles POST /search/demo.
func (s *Server) DemoSearch(w http.ResponseWriter, r *http.Request) {
	var req demoRequest
	if !s.decode(w, r, &req) {
		return
	}

	results := s.search.DemoSearch(r.Context(), req.Query, req.TopK, true)
	writeJSON(w, http.StatusOK, resultsToItems(results))
}

// ProcessData handles POST /search/process.
func (s *Server) ProcessData(w http.ResponseWriter, r *http.Request) {
	if s.pipeline == nil {
		writeError(w, http.StatusNotImplemented, CodeNotImplemented, "data processing pipeline is not configured")
		return
	}

	report, err := s.pipeline.Run(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pipelineToResponse(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v. An empty body decodes as {}.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Used() {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}
