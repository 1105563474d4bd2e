package request

import (
	"errors"
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength  = 8192
	DefaultTopK     = 5
	DefaultDemoTopK = 3
)

// Request is a validated search query.
type Request struct {
	query     string
	topK      int
	threshold float64
}

// New validates and normalizes search parameters.
// topK <= 0 falls back to defaultTopK; larger values are passed through.
// threshold is carried but does not filter results.
func New(query string, topK int, threshold float64, defaultTopK int) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, errors.New("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	return Request{query: query, topK: topK, threshold: threshold}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// TopK returns the number of nearest neighbours to retrieve.
func (r *Request) TopK() int { return r.topK }

// Threshold returns the caller-supplied similarity threshold.
func (r *Request) Threshold() float64 { return r.threshold }
