package vector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/db"
	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/metrics"
)

// Hash fields of a stored record.
const (
	fieldID          = "id"
	fieldVector      = "vector"
	fieldMetadata    = "metadata"
	fieldPageContent = "pageContent"
	fieldContent     = "content"
)

// DefaultBatchSize bounds the number of records per pipelined write.
const DefaultBatchSize = 100

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	DelMulti(ctx context.Context, keys []string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	IndexInfo(ctx context.Context, name string) (db.IndexStats, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Record is one vector with its metadata, ready to be written.
type Record struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
}

// HNSWConfig holds HNSW build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Config addresses one index inside the store.
type Config struct {
	Environment string
	IndexName   string
	Dimensions  int
	BatchSize   int
	HNSW        HNSWConfig
}

// Repo reads and writes vectors of a single namespaced index.
type Repo struct {
	store     store
	prefix    string
	dim       int
	batchSize int
	hnsw      HNSWConfig
	logger    *zap.Logger
}

// New creates a vector repository. Environment, IndexName and Dimensions are required.
func New(s store, cfg Config, logger *zap.Logger) (*Repo, error) {
	if cfg.Environment == "" {
		return nil, errors.New("vector store environment is required")
	}
	if cfg.IndexName == "" {
		return nil, errors.New("vector store index name is required")
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("vector dimensions must be positive, got %d", cfg.Dimensions)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Repo{
		store:     s,
		prefix:    KeyPrefix(cfg.Environment, cfg.IndexName),
		dim:       cfg.Dimensions,
		batchSize: batch,
		hnsw:      cfg.HNSW,
		logger:    logger,
	}, nil
}

// KeyPrefix returns the key namespace of an index: "<environment>:<index>:".
func KeyPrefix(environment, index string) string {
	return environment + ":" + index + ":"
}

// IndexName returns the FT index name.
func (r *Repo) IndexName() string { return r.prefix + "idx" }

func (r *Repo) docPrefix() string { return r.prefix + "doc:" }

func (r *Repo) docKey(id string) string { return r.docPrefix() + id }

// EnsureIndex creates the FT index when it does not exist. Returns true if created.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	name := r.IndexName()
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return false, nil
	}

	def, err := db.NewIndex(name).
		Prefix(r.docPrefix()).
		Tag(fieldID).
		VectorHNSW(fieldVector, r.dim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct).
		Build()
	if err != nil {
		return false, fmt.Errorf("build index %s: %w", name, err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// другой инстанс мог создать индекс между проверкой и FT.CREATE
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", name, err)
	}
	return true, nil
}

// Stats returns index statistics.
func (r *Repo) Stats(ctx context.Context) (db.IndexStats, error) {
	start := time.Now()
	stats, err := r.store.IndexInfo(ctx, r.IndexName())
	observe(db.OpIndexInfo, start, err)
	if err != nil {
		return db.IndexStats{}, fmt.Errorf("index info %s: %w", r.IndexName(), err)
	}
	return stats, nil
}

// Upsert writes records in sequential batches of at most BatchSize.
// The first failing batch aborts the call; earlier batches stay written.
// Returns the number of batches written.
func (r *Repo) Upsert(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	items := make([]db.HashSetItem, len(records))
	for i := range records {
		item, err := r.toHash(&records[i])
		if err != nil {
			return 0, err
		}
		items[i] = item
	}

	total := (len(items) + r.batchSize - 1) / r.batchSize
	for b := 0; b < total; b++ {
		lo := b * r.batchSize
		hi := min(lo+r.batchSize, len(items))

		start := time.Now()
		err := r.store.HSetMulti(ctx, items[lo:hi])
		observe(db.OpHSet, start, err)
		if err != nil {
			return b, fmt.Errorf("upsert batch %d/%d: %w", b+1, total, err)
		}
		r.logger.Debug("Upserted batch",
			zap.Int("batch", b+1), zap.Int("batches", total), zap.Int("records", hi-lo))
	}
	return total, nil
}

// Delete removes records by id in one bulk call. Returns the number of keys removed.
func (r *Repo) Delete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(id)
	}

	start := time.Now()
	n, err := r.store.DelMulti(ctx, keys)
	observe(db.OpDel, start, err)
	if err != nil {
		return 0, fmt.Errorf("delete %d records: %w", len(ids), err)
	}
	return n, nil
}

// Query returns the topK nearest records to vector, best first.
func (r *Repo) Query(ctx context.Context, vector []float32, topK int) ([]hit.Raw, error) {
	if len(vector) != r.dim {
		return nil, fmt.Errorf("query vector has %d dims, index expects %d: %w",
			len(vector), r.dim, domain.ErrVectorDimMismatch)
	}

	start := time.Now()
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.IndexName(),
		VectorField:  fieldVector,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{fieldID, fieldMetadata, fieldPageContent, fieldContent},
	})
	observe(db.OpSearch, start, err)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", r.IndexName(), err)
	}

	hits := make([]hit.Raw, 0, len(sr.Entries))
	for i := range sr.Entries {
		hits = append(hits, r.toHit(&sr.Entries[i]))
	}
	return hits, nil
}

func (r *Repo) toHash(rec *Record) (db.HashSetItem, error) {
	if rec.ID == "" {
		return db.HashSetItem{}, errors.New("record id is required")
	}
	if len(rec.Vector) != r.dim {
		return db.HashSetItem{}, fmt.Errorf("record %s: vector has %d dims, index expects %d: %w",
			rec.ID, len(rec.Vector), r.dim, domain.ErrVectorDimMismatch)
	}
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return db.HashSetItem{}, fmt.Errorf("marshal metadata of %s: %w", rec.ID, err)
	}
	return db.HashSetItem{
		Key: r.docKey(rec.ID),
		Fields: map[string]string{
			fieldID:       rec.ID,
			fieldVector:   db.EncodeVector(rec.Vector),
			fieldMetadata: string(meta),
		},
	}, nil
}

func (r *Repo) toHit(e *db.SearchEntry) hit.Raw {
	score := e.Score
	h := hit.Raw{
		ID:    e.Fields[fieldID],
		Score: &score,
	}
	if h.ID == "" {
		h.ID = strings.TrimPrefix(e.Key, r.docPrefix())
	}
	if v, ok := e.Fields[fieldPageContent]; ok {
		h.PageContent = &v
	}
	if v, ok := e.Fields[fieldContent]; ok {
		h.Content = &v
	}
	if raw := e.Fields[fieldMetadata]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &h.Metadata); err != nil {
			r.logger.Warn("Failed to decode hit metadata", zap.String("key", e.Key), zap.Error(err))
		}
	}
	return h
}

func observe(op string, start time.Time, err error) {
	metrics.VectorStoreOpsTotal.WithLabelValues(op, metrics.Status(err)).Inc()
	metrics.VectorStoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
