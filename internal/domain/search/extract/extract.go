// Package extract turns raw vector store hits into client-facing results.
package extract

import (
	"encoding/json"
	"math"

	"github.com/kailas-cloud/semsearch/internal/domain/search/hit"
	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
)

// NodeContentKey holds a JSON-encoded node payload written by document loaders.
const NodeContentKey = "_node_content"

// Rule recovers text from a raw hit. An empty string means "try the next rule".
type Rule struct {
	Name    string
	Extract func(h *hit.Raw) string
}

// Rules is the ordered content fallback chain; the first non-empty text wins.
var Rules = []Rule{
	{Name: "page_content", Extract: func(h *hit.Raw) string { return deref(h.PageContent) }},
	{Name: "content", Extract: func(h *hit.Raw) string { return deref(h.Content) }},
	{Name: "metadata._node_content", Extract: nodeContentText},
	{Name: "metadata.pageContent", Extract: metaField("pageContent")},
	{Name: "metadata.content", Extract: metaField("content")},
	{Name: "metadata.text", Extract: metaField("text")},
}

// Content applies Rules in order and returns result.Placeholder when none match.
func Content(h *hit.Raw) string {
	for _, r := range Rules {
		if s := r.Extract(h); s != "" {
			return s
		}
	}
	return result.Placeholder
}

// Normalize converts one raw hit. Pure.
func Normalize(h *hit.Raw) result.Result {
	var score float64
	if h.Score != nil {
		score = math.Abs(*h.Score)
	}
	return result.New(h.ID, score, Content(h), reshapeMetadata(h))
}

// NormalizeAll normalizes every hit and sorts by descending score.
func NormalizeAll(hits []hit.Raw) []result.Result {
	out := make([]result.Result, len(hits))
	for i := range hits {
		out[i] = Normalize(&hits[i])
	}
	result.SortByScore(out)
	return out
}

func reshapeMetadata(h *hit.Raw) result.Metadata {
	docID, _ := h.MetaText("document_id")
	if docID == "" {
		docID, _ = h.MetaText("doc_id")
	}
	fileName, _ := h.MetaText("file_name")
	fileType, _ := h.MetaText("file_type")
	return result.Metadata{DocumentID: docID, FileName: fileName, FileType: fileType}
}

func nodeContentText(h *hit.Raw) string {
	raw, ok := h.MetaString(NodeContentKey)
	if !ok || raw == "" {
		return ""
	}
	var node struct {
		Text string `json:"text"`
	}
	// malformed payloads fall through to the next rule
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		return ""
	}
	return node.Text
}

func metaField(key string) func(h *hit.Raw) string {
	return func(h *hit.Raw) string {
		s, _ := h.MetaText(key)
		return s
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
