package semsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/semsearch/internal/db"
	dbRedis "github.com/kailas-cloud/semsearch/internal/db/redis"
	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/document"
	"github.com/kailas-cloud/semsearch/internal/domain/search/demo"
	"github.com/kailas-cloud/semsearch/internal/domain/search/extract"
	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/domain/search/request"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	"github.com/kailas-cloud/semsearch/internal/repository/vector"
	"github.com/kailas-cloud/semsearch/internal/transport/openai"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
	titleuc "github.com/kailas-cloud/semsearch/internal/usecase/title"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultEnvironment      = "local"
	defaultIndex            = "semantic-search"
	defaultDimensions       = 1536
	defaultHNSWM            = 16
	defaultHNSWEFConstruct  = 200
	defaultEmbeddingModel   = "text-embedding-3-small"
	defaultTitleModel       = "gpt-3.5-turbo"
	defaultTitleTimeout     = 15 * time.Second
)

// Внутренние интерфейсы для подмены в тестах.
type vectorUseCase interface {
	SemanticSearch(ctx context.Context, query string, topK int) ([]hit.Raw, error)
	StoreDocuments(ctx context.Context, docs []document.Document) (vectorstore.WriteResult, error)
	DeleteDocuments(ctx context.Context, ids []string) (vectorstore.WriteResult, error)
}

type titleUseCase interface {
	Enrich(ctx context.Context, results []result.Result) []result.Result
}

// Client is the semsearch SDK entry point.
type Client struct {
	store     db.Store
	vectors   vectorUseCase
	titles    titleUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client, connects to the database and makes sure the index exists.
// The provided context is used for the readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		environment:      defaultEnvironment,
		index:            defaultIndex,
		vectorDimensions: defaultDimensions,
		hnswM:            defaultHNSWM,
		hnswEFConstruct:  defaultHNSWEFConstruct,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("semsearch: database address required (use WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		TLS:      cfg.tls,
	})
	if err != nil {
		return nil, fmt.Errorf("semsearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("semsearch: database not ready: %w", err)
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	repo, err := vector.New(store, vector.Config{
		Environment: cfg.environment,
		IndexName:   cfg.index,
		Dimensions:  cfg.vectorDimensions,
		BatchSize:   cfg.batchSize,
		HNSW: vector.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("semsearch: %w", err)
	}

	embedder, provider := buildEmbedder(cfg)

	vectors := vectorstore.New(repo, embedder, nil)
	if err := vectors.Init(ctx); err != nil {
		return nil, fmt.Errorf("semsearch: init index: %w", err)
	}

	titles := titleuc.New(buildCompleter(cfg), titleuc.Options{
		MaxTokens:      30,
		Temperature:    0.7,
		Timeout:        defaultTitleTimeout,
		MaxConcurrency: cfg.titleConcurrency,
	}, nil)

	return &Client{
		store:     store,
		vectors:   vectors,
		titles:    titles,
		healthSvc: healthuc.New(store, provider, nil),
		obs:       obs,
	}, nil
}

// buildEmbedder picks the configured embedder: explicit > OpenAI > noop.
// provider is nil unless the embedder can be health-checked.
func buildEmbedder(cfg *clientConfig) (domain.Embedder, healthuc.ProviderChecker) {
	switch {
	case cfg.embedder != nil:
		var provider healthuc.ProviderChecker
		if hc, ok := cfg.embedder.(healthuc.ProviderChecker); ok {
			provider = hc
		}
		return adaptEmbedder(cfg.embedder), provider
	case cfg.openAIKey != "":
		e := openai.NewEmbedder(&openai.Config{
			APIKey:     cfg.openAIKey,
			Model:      defaultEmbeddingModel,
			Dimensions: cfg.vectorDimensions,
		})
		return e, e
	default:
		return noopEmbedder{}, nil
	}
}

// buildCompleter returns nil (not a typed nil pointer) when titles are disabled.
func buildCompleter(cfg *clientConfig) titleuc.Completer {
	switch {
	case cfg.completer != nil:
		return &completerAdapter{inner: cfg.completer}
	case cfg.openAIKey != "":
		return openai.NewCompleter(&openai.Config{APIKey: cfg.openAIKey, Model: defaultTitleModel})
	default:
		return nil
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "ping", start, 0, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search returns up to topK hits for query, sorted by descending score.
// topK <= 0 means 5.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	return c.search(ctx, "search", query, topK, false)
}

// SearchWithTitles is Search plus a generated title per hit.
func (c *Client) SearchWithTitles(ctx context.Context, query string, topK int) ([]Result, error) {
	return c.search(ctx, "search.titles", query, topK, true)
}

func (c *Client) search(ctx context.Context, op, query string, topK int, titles bool) (out []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, op, start, len(out), err) }()

	req, err := request.New(query, topK, 0, request.DefaultTopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	hits, err := c.vectors.SemanticSearch(ctx, req.Query(), req.TopK())
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	results := extract.NormalizeAll(hits)
	if titles && len(results) > 0 {
		results = c.titles.Enrich(ctx, results)
	}
	return resultsFromDomain(results), nil
}

// Store embeds and writes docs. Returns the number of documents written.
func (c *Client) Store(ctx context.Context, docs []Document) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "store", start, n, err) }()

	if len(docs) == 0 {
		return 0, fmt.Errorf("%w: no documents", ErrInvalidInput)
	}
	in := make([]document.Document, len(docs))
	for i, d := range docs {
		in[i] = document.New(d.Text, d.Metadata)
	}

	res, err := c.vectors.StoreDocuments(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("store: %w", err)
	}
	return res.Count, nil
}

// Delete removes documents by id. Returns len(ids); ids that did not exist count too.
func (c *Client) Delete(ctx context.Context, ids []string) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "delete", start, n, err) }()

	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no ids", ErrInvalidInput)
	}
	res, err := c.vectors.DeleteDocuments(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return res.Count, nil
}

// Demo searches the built-in dataset without touching the database.
// topK <= 0 means 3.
func (c *Client) Demo(_ context.Context, query string, topK int) []Result {
	if topK <= 0 {
		topK = request.DefaultDemoTopK
	}
	return resultsFromDomain(demo.Top(query, topK))
}
