package domain

import (
	"context"
	"errors"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	calls  []string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.calls = append(s.calls, text)
	return s.result, s.err
}

type stubBatchEmbedder struct {
	stubEmbedder
	batch    BatchEmbeddingResult
	batchErr error
	batches  int
}

func (s *stubBatchEmbedder) BatchEmbed(_ context.Context, _ []string) (BatchEmbeddingResult, error) {
	s.batches++
	return s.batch, s.batchErr
}

func TestBatchFallback_AggregatesTokens(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{1}, PromptTokens: 2, TotalTokens: 3}}

	res, err := BatchFallback(context.Background(), inner, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(res.Embeddings))
	}
	if res.PromptTokens != 4 || res.TotalTokens != 6 {
		t.Errorf("tokens = %d/%d, want 4/6", res.PromptTokens, res.TotalTokens)
	}
	if len(inner.calls) != 2 || inner.calls[1] != "b" {
		t.Errorf("calls = %v", inner.calls)
	}
}

func TestBatchFallback_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	inner := &stubEmbedder{err: innerErr}

	_, err := BatchFallback(context.Background(), inner, []string{"a"})
	if !errors.Is(err, innerErr) {
		t.Errorf("expected wrapped inner error, got %v", err)
	}
}

func TestEmbedAll_UsesNativeBatch(t *testing.T) {
	e := &stubBatchEmbedder{batch: BatchEmbeddingResult{Embeddings: [][]float32{{1}, {2}}}}

	res, err := EmbedAll(context.Background(), e, []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.batches != 1 {
		t.Errorf("expected 1 batch call, got %d", e.batches)
	}
	if len(e.calls) != 0 {
		t.Errorf("expected no single calls, got %d", len(e.calls))
	}
	if len(res.Embeddings) != 2 {
		t.Errorf("expected 2 embeddings, got %d", len(res.Embeddings))
	}
}

func TestEmbedAll_CountMismatch(t *testing.T) {
	e := &stubBatchEmbedder{batch: BatchEmbeddingResult{Embeddings: [][]float32{{1}}}}

	_, err := EmbedAll(context.Background(), e, []string{"a", "b"})
	if !errors.Is(err, ErrEmbeddingProviderError) {
		t.Errorf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestEmbedAll_FallsBack(t *testing.T) {
	e := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{1}}}

	res, err := EmbedAll(context.Background(), e, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 3 || len(e.calls) != 3 {
		t.Errorf("embeddings=%d calls=%d", len(res.Embeddings), len(e.calls))
	}
}
