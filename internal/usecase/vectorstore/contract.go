package vectorstore

import (
	"context"

	"github.com/kailas-cloud/semsearch/internal/db"
	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/repository/vector"
)

// Repository defines the storage contract of the vector index.
type Repository interface {
	EnsureIndex(ctx context.Context) (bool, error)
	Stats(ctx context.Context) (db.IndexStats, error)
	Upsert(ctx context.Context, records []vector.Record) (int, error)
	Delete(ctx context.Context, ids []string) (int, error)
	Query(ctx context.Context, vec []float32, topK int) ([]hit.Raw, error)
}
