package title

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	"github.com/kailas-cloud/semsearch/internal/logger"
	"github.com/kailas-cloud/semsearch/internal/metrics"
	"github.com/kailas-cloud/semsearch/internal/transport/openai"
)

const (
	systemPrompt = "You are a helpful assistant that generates concise, descriptive titles for text content. " +
		"Create a title that is brief (5-7 words maximum) but captures the essence of the content."

	// MaxContentRunes bounds the content sent to the model.
	MaxContentRunes = 1000
)

// Options tune title generation.
type Options struct {
	MaxTokens         int
	Temperature       float32
	Timeout           time.Duration
	MaxConcurrency    int
	RequestsPerSecond float64 // 0 = unlimited
}

// Generator produces short titles for search result content.
type Generator struct {
	llm     Completer
	opts    Options
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a Generator. A nil llm disables generation: every title falls back.
func New(llm Completer, opts Options, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 30
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = 5
	}

	limit := rate.Inf
	burst := 0
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}

	return &Generator{
		llm:     llm,
		opts:    opts,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Generate returns a title for content. It never fails: any problem yields
// result.UntitledTitle.
func (g *Generator) Generate(ctx context.Context, content string) string {
	if g.llm == nil || content == "" || content == result.Placeholder {
		metrics.TitleGenerationsTotal.WithLabelValues("skipped").Inc()
		return result.UntitledTitle
	}

	log := logger.FromContext(ctx, g.logger)

	if err := g.limiter.Wait(ctx); err != nil {
		log.Warn("Title generation cancelled", zap.Error(err))
		metrics.TitleGenerationsTotal.WithLabelValues("fallback").Inc()
		return result.UntitledTitle
	}

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	reply, err := g.llm.Complete(ctx, openai.CompletionRequest{
		System:      systemPrompt,
		User:        `Generate a concise title for this content: "` + truncate(content) + `"`,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	})
	if err != nil {
		log.Warn("Title generation failed", zap.Error(err))
		metrics.TitleGenerationsTotal.WithLabelValues("fallback").Inc()
		return result.UntitledTitle
	}

	title := Clean(reply)
	if title == result.UntitledTitle {
		metrics.TitleGenerationsTotal.WithLabelValues("fallback").Inc()
	} else {
		metrics.TitleGenerationsTotal.WithLabelValues("generated").Inc()
	}
	return title
}

// Enrich attaches a title to every result. Generations run concurrently,
// bounded by MaxConcurrency; output order matches input order.
func (g *Generator) Enrich(ctx context.Context, results []result.Result) []result.Result {
	out := make([]result.Result, len(results))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.MaxConcurrency)
	for i := range results {
		eg.Go(func() error {
			out[i] = results[i].WithTitle(g.Generate(egCtx, results[i].Content()))
			return nil
		})
	}
	_ = eg.Wait() // Generate never fails

	return out
}

// Clean trims the model reply and strips one leading and one trailing quote.
// An empty reply becomes result.UntitledTitle.
func Clean(reply string) string {
	t := strings.TrimSpace(reply)
	if t == "" {
		return result.UntitledTitle
	}
	if t[0] == '"' || t[0] == '\'' {
		t = t[1:]
	}
	if n := len(t); n > 0 && (t[n-1] == '"' || t[n-1] == '\'') {
		t = t[:n-1]
	}
	if t == "" {
		return result.UntitledTitle
	}
	return t
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxContentRunes {
		return s
	}
	return string([]rune(s)[:MaxContentRunes]) + "..."
}
