package domain

import "context"

type embeddingUsageKey struct{}

// EmbeddingUsage collects embedding token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the embedding decorator writes after each call; the handler reads it for the
// X-Embedding-Tokens response header.
type EmbeddingUsage struct {
	TotalTokens int
	Calls       int
	CacheHits   int
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// AddTokens records one provider call and its consumed tokens.
func (u *EmbeddingUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Calls++
	}
}

// AddCacheHit records a call served from the embedding cache.
func (u *EmbeddingUsage) AddCacheHit() {
	if u != nil {
		u.CacheHits++
	}
}

// Used reports whether any embedding was requested, including cache hits.
func (u *EmbeddingUsage) Used() bool {
	return u != nil && (u.Calls > 0 || u.CacheHits > 0)
}
