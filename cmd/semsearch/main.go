package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/config"
	dbRedis "github.com/kailas-cloud/semsearch/internal/db/redis"
	"github.com/kailas-cloud/semsearch/internal/domain"
	logpkg "github.com/kailas-cloud/semsearch/internal/logger"
	"github.com/kailas-cloud/semsearch/internal/metrics"
	"github.com/kailas-cloud/semsearch/internal/repository/embcache"
	"github.com/kailas-cloud/semsearch/internal/repository/vector"
	chiTransport "github.com/kailas-cloud/semsearch/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/semsearch/internal/transport/openai"
	"github.com/kailas-cloud/semsearch/internal/transport/shell"
	embeddinguc "github.com/kailas-cloud/semsearch/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
	pipelineuc "github.com/kailas-cloud/semsearch/internal/usecase/pipeline"
	searchuc "github.com/kailas-cloud/semsearch/internal/usecase/search"
	titleuc "github.com/kailas-cloud/semsearch/internal/usecase/title"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
	"github.com/kailas-cloud/semsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting semsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("vector_env", cfg.VectorStore.Environment),
		zap.String("index", cfg.VectorStore.IndexName),
		zap.Strings("vector_addrs", cfg.VectorStore.Addrs),
	)

	metrics.Register()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.VectorStore.Addrs,
		Username: cfg.VectorStore.Username,
		Password: cfg.VectorStore.APIKey,
		TLS:      cfg.VectorStore.TLS,
	})
	if err != nil {
		logger.Fatal("Failed to create vector store client", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	readiness := time.Duration(cfg.VectorStore.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	repo, err := vector.New(store, vector.Config{
		Environment: cfg.VectorStore.Environment,
		IndexName:   cfg.VectorStore.IndexName,
		Dimensions:  cfg.VectorStore.Dimensions,
		BatchSize:   cfg.VectorStore.UpsertBatchSize,
		HNSW: vector.HNSWConfig{
			M:           cfg.VectorStore.HNSWM,
			EFConstruct: cfg.VectorStore.HNSWEFConstruct,
		},
	}, logger)
	if err != nil {
		logger.Fatal("Invalid vector store configuration", zap.Error(err))
	}

	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	if cfg.Embedding.APIKey == "" {
		logger.Warn("Embedding api key not set, search and store will fail until it is configured")
	}
	embedder := buildEmbedder(base, store, &cfg, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cache", cfg.Embedding.Cache.Enabled),
	)

	vectorSvc := vectorstore.New(repo, embedder, logger)
	if err := vectorSvc.Init(ctx); err != nil {
		logger.Fatal("Vector store init failed", zap.Error(err))
	}

	completer := buildCompleter(&cfg.LLM, logger)
	if completer == nil {
		logger.Warn("LLM api key not set, titles fall back to the default")
	}
	titles := titleuc.New(completer, titleuc.Options{
		MaxTokens:         cfg.LLM.MaxTokens,
		Temperature:       cfg.LLM.Temperature,
		Timeout:           time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		MaxConcurrency:    cfg.LLM.MaxConcurrency,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
	}, logger)

	searchSvc := searchuc.New(vectorSvc, titles, logger)
	healthSvc := healthuc.New(store, base, logger)

	var pipeline chiTransport.PipelineRunner
	if len(cfg.Pipeline.Steps) > 0 {
		pipeline = pipelineuc.New(pipelineSteps(cfg.Pipeline.Steps), shell.NewRunner(logger), logger)
	}

	server := chiTransport.NewServer(searchSvc, healthSvc, pipeline, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Instrumented.
func buildEmbedder(
	base domain.Embedder,
	store *dbRedis.Store,
	cfg *config.Config,
	logger *zap.Logger,
) domain.Embedder {
	embedder := base
	if cfg.Embedding.Cache.Enabled {
		embedder = embcache.New(base, store, embcache.Options{
			KeyPrefix: vector.KeyPrefix(cfg.VectorStore.Environment, cfg.VectorStore.IndexName),
			Model:     cfg.Embedding.Model,
			TTL:       time.Duration(cfg.Embedding.Cache.TTLSec) * time.Second,
		}, metrics.EmbeddingCacheTotal, logger)
	}

	return embeddinguc.NewInstrumentedEmbedder(embedder, "openai", cfg.Embedding.Model, logger)
}

func pipelineSteps(in []config.PipelineStep) []pipelineuc.Step {
	out := make([]pipelineuc.Step, len(in))
	for i, s := range in {
		out[i] = pipelineuc.Step{Name: s.Name, Command: s.Command, Args: s.Args, Dir: s.Dir}
	}
	return out
}

// buildCompleter returns a nil interface (not a typed nil pointer) when the
// LLM is not configured, so the title generator falls back without calling out.
func buildCompleter(cfg *config.LLMConfig, logger *zap.Logger) titleuc.Completer {
	if cfg.APIKey == "" {
		return nil
	}
	return openaiTransport.NewCompleter(&openaiTransport.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Logger:  logger,
	})
}
