package search

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/document"
	"github.com/kailas-cloud/semsearch/internal/domain/search/demo"
	"github.com/kailas-cloud/semsearch/internal/domain/search/extract"
	"github.com/kailas-cloud/semsearch/internal/domain/search/request"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	"github.com/kailas-cloud/semsearch/internal/logger"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
)

// HealthMessage is reported by the liveness endpoint.
const HealthMessage = "Semantic search API is operational"

// Health is the liveness payload.
type Health struct {
	Status  string
	Message string
}

// Service is the search façade used by the HTTP layer.
type Service struct {
	store  VectorStore
	titles Enricher
	logger *zap.Logger
}

// New creates a search service.
func New(store VectorStore, titles Enricher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, titles: titles, logger: logger}
}

// SemanticSearch runs a similarity search and returns normalized results
// sorted by descending score. A vector store failure is not returned as an
// error: the result is a single synthetic error entry instead.
func (s *Service) SemanticSearch(
	ctx context.Context, query string, topK int, threshold float64, enrich bool,
) ([]result.Result, error) {
	req, err := request.New(query, topK, threshold, request.DefaultTopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	log := logger.FromContext(ctx, s.logger)
	log.Info("Semantic search", zap.String("query", req.Query()), zap.Int("top_k", req.TopK()))

	hits, err := s.store.SemanticSearch(ctx, req.Query(), req.TopK())
	if err != nil {
		log.Error("Semantic search failed", zap.Error(err))
		return []result.Result{result.NewError(domain.ProviderMessage(err), string(debug.Stack()), enrich)}, nil
	}

	results := extract.NormalizeAll(hits)
	for i := range results {
		if results[i].Content() == result.Placeholder {
			log.Warn("No content found for hit", zap.String("id", results[i].ID()))
		}
	}

	return s.enrich(ctx, results, enrich), nil
}

// StoreDocuments embeds and stores docs.
func (s *Service) StoreDocuments(ctx context.Context, docs []document.Document) (vectorstore.WriteResult, error) {
	if len(docs) == 0 {
		return vectorstore.WriteResult{}, fmt.Errorf("%w: valid documents array is required", domain.ErrInvalidInput)
	}
	res, err := s.store.StoreDocuments(ctx, docs)
	if err != nil {
		return vectorstore.WriteResult{}, fmt.Errorf("store documents: %w", err)
	}
	return res, nil
}

// DeleteDocuments removes documents by id.
func (s *Service) DeleteDocuments(ctx context.Context, ids []string) (vectorstore.WriteResult, error) {
	if len(ids) == 0 {
		return vectorstore.WriteResult{}, fmt.Errorf("%w: valid ids array is required", domain.ErrInvalidInput)
	}
	res, err := s.store.DeleteDocuments(ctx, ids)
	if err != nil {
		return vectorstore.WriteResult{}, fmt.Errorf("delete documents: %w", err)
	}
	return res, nil
}

// Health reports liveness. It never touches the providers.
func (s *Service) Health() Health {
	return Health{Status: "ok", Message: HealthMessage}
}

// DemoSearch searches the built-in dataset. An empty query keeps the stored scores.
// A nil topK means request.DefaultDemoTopK; an explicit topK <= 0 returns nothing.
func (s *Service) DemoSearch(ctx context.Context, query string, topK *int, enrich bool) []result.Result {
	k := request.DefaultDemoTopK
	if topK != nil {
		k = max(*topK, 0)
	}
	return s.enrich(ctx, demo.Top(query, k), enrich)
}

func (s *Service) enrich(ctx context.Context, results []result.Result, enrich bool) []result.Result {
	if !enrich || s.titles == nil || len(results) == 0 {
		return results
	}
	return s.titles.Enrich(ctx, results)
}
