package result

import (
	"cmp"
	"slices"
)

// Placeholder is the content of a hit with no recoverable text.
const Placeholder = "No content available"

// UntitledTitle is the title used when none could be generated.
const UntitledTitle = "Untitled Document"

// ErrorID and ErrorTitle mark the synthetic result reporting a failed search.
const (
	ErrorID    = "error"
	ErrorTitle = "Error Occurred"
)

// Metadata is the reshaped hit metadata returned to clients.
type Metadata struct {
	DocumentID string
	FileName   string
	FileType   string
	Topic      string // demo dataset only
}

// Failure describes the error carried by a synthetic error result.
type Failure struct {
	Message string
	Stack   string
}

// Result is a single normalized search hit.
type Result struct {
	id       string
	score    float64
	content  string
	title    string
	metadata Metadata
	failure  *Failure
}

// New creates a search result.
func New(id string, score float64, content string, metadata Metadata) Result {
	return Result{id: id, score: score, content: content, metadata: metadata}
}

// NewError creates the single result returned in place of a failed search.
// Enriched results also carry the ErrorTitle.
func NewError(message, stack string, enriched bool) Result {
	r := Result{
		id:      ErrorID,
		content: "Error occurred: " + message,
		failure: &Failure{Message: message, Stack: stack},
	}
	if enriched {
		r.title = ErrorTitle
	}
	return r
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Score returns the non-negative relevance score.
func (r *Result) Score() float64 { return r.score }

// Content returns the recovered text, never empty.
func (r *Result) Content() string { return r.content }

// Title returns the generated title, empty when not enriched.
func (r *Result) Title() string { return r.title }

// Metadata returns the reshaped metadata.
func (r *Result) Metadata() Metadata { return r.metadata }

// Failure returns the error details of a synthetic error result, nil otherwise.
func (r *Result) Failure() *Failure { return r.failure }

// WithTitle returns a copy with the title set.
func (r Result) WithTitle(title string) Result {
	r.title = title
	return r
}

// SortByScore orders results by descending score. Ties keep their input order.
func SortByScore(rs []Result) {
	slices.SortStableFunc(rs, func(a, b Result) int {
		return cmp.Compare(b.score, a.score)
	})
}
