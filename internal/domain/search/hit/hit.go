// Package hit models a nearest-neighbour match as returned by the vector store,
// before normalization. Every field is optional.
package hit

import (
	"encoding/json"
	"fmt"
)

// Raw is one provider hit.
type Raw struct {
	ID          string
	Score       *float64
	PageContent *string
	Content     *string
	Metadata    map[string]any
}

// MetaString returns metadata[key] when it is a string.
func (r *Raw) MetaString(key string) (string, bool) {
	if r.Metadata == nil {
		return "", false
	}
	s, ok := r.Metadata[key].(string)
	return s, ok
}

// MetaText returns metadata[key] as text. Strings are returned as-is; numbers
// and booleans are formatted. Nested maps, slices and nil are not text.
func (r *Raw) MetaText(key string) (string, bool) {
	if r.Metadata == nil {
		return "", false
	}
	switch v := r.Metadata[key].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}
