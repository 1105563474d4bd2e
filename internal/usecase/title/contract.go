package title

import (
	"context"

	"github.com/kailas-cloud/semsearch/internal/transport/openai"
)

// Completer sends one chat completion and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}
