package semsearch

import (
	"context"

	"github.com/kailas-cloud/semsearch/internal/domain/document"
	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
)

// --- vectorUseCase mock ---

type mockVectorUC struct {
	searchFn func(ctx context.Context, query string, topK int) ([]hit.Raw, error)
	storeFn  func(ctx context.Context, docs []document.Document) (vectorstore.WriteResult, error)
	deleteFn func(ctx context.Context, ids []string) (vectorstore.WriteResult, error)
}

func (m *mockVectorUC) SemanticSearch(ctx context.Context, query string, topK int) ([]hit.Raw, error) {
	return m.searchFn(ctx, query, topK)
}

func (m *mockVectorUC) StoreDocuments(ctx context.Context, docs []document.Document) (vectorstore.WriteResult, error) {
	return m.storeFn(ctx, docs)
}

func (m *mockVectorUC) DeleteDocuments(ctx context.Context, ids []string) (vectorstore.WriteResult, error) {
	return m.deleteFn(ctx, ids)
}

// --- titleUseCase mock ---

type mockTitleUC struct {
	calls int
}

func (m *mockTitleUC) Enrich(_ context.Context, rs []result.Result) []result.Result {
	m.calls++
	out := make([]result.Result, len(rs))
	for i := range rs {
		out[i] = rs[i].WithTitle("About " + rs[i].ID())
	}
	return out
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(vectors vectorUseCase, titles titleUseCase) *Client {
	return &Client{
		vectors: vectors,
		titles:  titles,
	}
}
