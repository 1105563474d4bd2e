package document

import (
	"fmt"
	"strconv"
	"time"
)

// PageContentKey is the metadata key carrying the original text of a stored document.
const PageContentKey = "pageContent"

// Document is a caller-supplied text with free-form metadata (immutable value object).
type Document struct {
	text     string
	metadata map[string]any
}

// New creates a Document. Metadata is copied.
func New(text string, metadata map[string]any) Document {
	return Document{text: text, metadata: cloneMap(metadata)}
}

// Text returns the document text.
func (d *Document) Text() string { return d.text }

// Metadata returns the caller-supplied metadata.
func (d *Document) Metadata() map[string]any { return d.metadata }

// ID returns the caller-supplied metadata.id, stringified, or a generated
// doc-<unix-millis>-<index> identifier when it is absent or zero-valued.
func (d *Document) ID(index int, now time.Time) string {
	if id, ok := callerID(d.metadata["id"]); ok {
		return id
	}
	return fmt.Sprintf("doc-%d-%d", now.UnixMilli(), index)
}

// StoredMetadata returns the metadata persisted next to the vector: the caller
// metadata with the original text under pageContent.
func (d *Document) StoredMetadata() map[string]any {
	m := make(map[string]any, len(d.metadata)+1)
	for k, v := range d.metadata {
		m[k] = v
	}
	m[PageContentKey] = d.text
	return m
}

func callerID(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", false
	case string:
		return id, id != ""
	case bool:
		return strconv.FormatBool(id), id
	case float64:
		// JSON numbers decode to float64
		return strconv.FormatFloat(id, 'f', -1, 64), id != 0
	case int:
		return strconv.Itoa(id), id != 0
	case int64:
		return strconv.FormatInt(id, 10), id != 0
	default:
		return fmt.Sprint(id), true
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
