package semsearch

import "github.com/kailas-cloud/semsearch/internal/domain/search/result"

// Document is a text with optional metadata. metadata["id"], when set,
// becomes the record id; otherwise one is generated.
type Document struct {
	Text     string
	Metadata map[string]any
}

// Metadata is the reshaped metadata of a search hit.
type Metadata struct {
	DocumentID string
	FileName   string
	FileType   string
	Topic      string // demo dataset only
}

// Result is a single search hit.
type Result struct {
	ID       string
	Score    float64
	Content  string
	Title    string // empty unless titles were requested
	Metadata Metadata
}

func resultFromDomain(r *result.Result) Result {
	md := r.Metadata()
	return Result{
		ID:      r.ID(),
		Score:   r.Score(),
		Content: r.Content(),
		Title:   r.Title(),
		Metadata: Metadata{
			DocumentID: md.DocumentID,
			FileName:   md.FileName,
			FileType:   md.FileType,
			Topic:      md.Topic,
		},
	}
}

func resultsFromDomain(rs []result.Result) []Result {
	out := make([]Result, len(rs))
	for i := range rs {
		out[i] = resultFromDomain(&rs[i])
	}
	return out
}
