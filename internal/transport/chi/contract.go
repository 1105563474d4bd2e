package chi

import (
	"context"

	"github.com/kailas-cloud/semsearch/internal/domain/document"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
	pipelineuc "github.com/kailas-cloud/semsearch/internal/usecase/pipeline"
	searchuc "github.com/kailas-cloud/semsearch/internal/usecase/search"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
)

// SearchService is the search façade.
type SearchService interface {
	SemanticSearch(ctx context.Context, query string, topK int, threshold float64, enrich bool) ([]result.Result, error)
	StoreDocuments(ctx context.Context, docs []document.Document) (vectorstore.WriteResult, error)
	DeleteDocuments(ctx context.Context, ids []string) (vectorstore.WriteResult, error)
	Health() searchuc.Health
	DemoSearch(ctx context.Context, query string, topK *int, enrich bool) []result.Result
}

// ReadinessChecker probes upstream dependencies.
type ReadinessChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// PipelineRunner runs the data-processing job.
type PipelineRunner interface {
	Run(ctx context.Context) (pipelineuc.Report, error)
}
