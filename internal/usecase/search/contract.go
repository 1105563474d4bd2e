package search

import (
	"context"

	"github.com/kailas-cloud/semsearch/internal/domain/document"
	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
)

// VectorStore embeds, stores, deletes and queries documents.
type VectorStore interface {
	SemanticSearch(ctx context.Context, query string, topK int) ([]hit.Raw, error)
	StoreDocuments(ctx context.Context, docs []document.Document) (vectorstore.WriteResult, error)
	DeleteDocuments(ctx context.Context, ids []string) (vectorstore.WriteResult, error)
}

// Enricher attaches generated titles to results, preserving order.
type Enricher interface {
	Enrich(ctx context.Context, results []result.Result) []result.Result
}
