package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/document"
	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/domain/search/request"
	"github.com/kailas-cloud/semsearch/internal/logger"
	"github.com/kailas-cloud/semsearch/internal/repository/vector"
)

// WriteResult reports a successful store or delete.
type WriteResult struct {
	Success bool
	Count   int
}

// Service embeds text and talks to the vector index.
type Service struct {
	repo   Repository
	embed  domain.Embedder
	logger *zap.Logger
	now    func() time.Time
}

// New creates a vector store service.
func New(repo Repository, embed domain.Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, embed: embed, logger: logger, now: time.Now}
}

// Init makes sure the index exists. Index statistics are read on a best-effort
// basis for diagnostics; failing to read them is only logged.
func (s *Service) Init(ctx context.Context) error {
	created, err := s.repo.EnsureIndex(ctx)
	if err != nil {
		return fmt.Errorf("ensure index: %w", domain.NewProviderError(domain.ErrVectorStoreError, err))
	}
	if created {
		s.logger.Info("Vector index created")
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Warn("Failed to read vector index stats", zap.Error(err))
		return nil
	}
	s.logger.Info("Vector index ready",
		zap.String("index", stats.Name),
		zap.Int64("num_docs", stats.NumDocs),
	)
	return nil
}

// SemanticSearch embeds query and returns the topK nearest raw hits.
// topK <= 0 falls back to request.DefaultTopK. Errors are returned as-is, never retried.
func (s *Service) SemanticSearch(ctx context.Context, query string, topK int) ([]hit.Raw, error) {
	if topK <= 0 {
		topK = request.DefaultTopK
	}

	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", asProviderError(err))
	}

	hits, err := s.repo.Query(ctx, emb.Embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", domain.NewProviderError(domain.ErrVectorStoreError, err))
	}

	logger.FromContext(ctx, s.logger).Debug("Semantic search completed",
		zap.Int("top_k", topK), zap.Int("hits", len(hits)))
	return hits, nil
}

// StoreDocuments embeds all texts in one batch, assigns ids and writes the
// records in sequential batches. Any failed batch fails the whole call.
func (s *Service) StoreDocuments(ctx context.Context, docs []document.Document) (WriteResult, error) {
	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].Text()
	}

	emb, err := domain.EmbedAll(ctx, s.embed, texts)
	if err != nil {
		return WriteResult{}, fmt.Errorf("embed documents: %w", asProviderError(err))
	}

	now := s.now()
	records := make([]vector.Record, len(docs))
	for i := range docs {
		records[i] = vector.Record{
			ID:       docs[i].ID(i, now),
			Vector:   emb.Embeddings[i],
			Metadata: docs[i].StoredMetadata(),
		}
	}

	batches, err := s.repo.Upsert(ctx, records)
	if err != nil {
		return WriteResult{}, fmt.Errorf("store documents: %w", domain.NewProviderError(domain.ErrVectorStoreError, err))
	}

	logger.FromContext(ctx, s.logger).Info("Documents stored",
		zap.Int("count", len(records)), zap.Int("batches", batches))
	return WriteResult{Success: true, Count: len(records)}, nil
}

// DeleteDocuments removes records by id in one bulk call.
// Count is the number of requested ids, not the number that existed.
func (s *Service) DeleteDocuments(ctx context.Context, ids []string) (WriteResult, error) {
	removed, err := s.repo.Delete(ctx, ids)
	if err != nil {
		return WriteResult{}, fmt.Errorf("delete documents: %w", domain.NewProviderError(domain.ErrVectorStoreError, err))
	}

	logger.FromContext(ctx, s.logger).Info("Documents deleted",
		zap.Int("requested", len(ids)), zap.Int("removed", removed))
	return WriteResult{Success: true, Count: len(ids)}, nil
}

func asProviderError(err error) error {
	var pe *domain.ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return domain.NewProviderError(domain.ErrEmbeddingProviderError, err)
}
