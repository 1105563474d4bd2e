package chi

import (
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
	pipelineuc "github.com/kailas-cloud/semsearch/internal/usecase/pipeline"
	"github.com/kailas-cloud/semsearch/internal/usecase/vectorstore"
)

type searchRequest struct {
	Query     string   `json:"query"`
	TopK      *int     `json:"topK,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type demoRequest struct {
	Query string `json:"query"`
	TopK  *int   `json:"topK,omitempty"`
}

type documentInput struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type storeRequest struct {
	Documents []documentInput `json:"documents"`
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

type searchResultItem struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Content  string         `json:"content"`
	Title    string         `json:"title,omitempty"`
	Metadata map[string]any `json:"metadata"`
}

type writeResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type processResponse struct {
	Success bool              `json:"success"`
	RunID   string            `json:"run_id"`
	Message string            `json:"message,omitempty"`
	Steps   map[string]string `json:"steps,omitempty"`
	Error   string            `json:"error,omitempty"`
	Stack   string            `json:"stack,omitempty"`
}

type errorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func resultToItem(r *result.Result) searchResultItem {
	item := searchResultItem{
		ID:      r.ID(),
		Score:   r.Score(),
		Content: r.Content(),
		Title:   r.Title(),
	}

	if f := r.Failure(); f != nil {
		item.Metadata = map[string]any{"error": f.Message, "stack": f.Stack}
		return item
	}

	md := r.Metadata()
	item.Metadata = map[string]any{
		"document_id": md.DocumentID,
		"file_name":   md.FileName,
		"file_type":   md.FileType,
	}
	if md.Topic != "" {
		item.Metadata["topic"] = md.Topic
	}
	return item
}

func resultsToItems(rs []result.Result) []searchResultItem {
	items := make([]searchResultItem, len(rs))
	for i := range rs {
		items[i] = resultToItem(&rs[i])
	}
	return items
}

func writeResultToResponse(r vectorstore.WriteResult) writeResponse {
	return writeResponse{Success: r.Success, Count: r.Count}
}

func readinessToResponse(r healthuc.Report) readinessResponse {
	checks := make(map[string]string, len(r.Checks))
	for k, v := range r.Checks {
		checks[k] = string(v)
	}
	return readinessResponse{Status: string(r.Status), Checks: checks}
}

func pipelineToResponse(r pipelineuc.Report) processResponse {
	if !r.Success {
		return processResponse{RunID: r.RunID, Error: r.Error, Stack: r.Stack}
	}
	return processResponse{
		Success: true,
		RunID:   r.RunID,
		Message: r.Message,
		Steps:   r.Steps,
	}
}
