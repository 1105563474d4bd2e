package db

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	VectorField  string // defaults to "vector"
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a search.
// Score is cosine similarity (1 - distance) and is not clamped.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// IndexStats is the subset of FT.INFO used for diagnostics.
type IndexStats struct {
	Name    string
	NumDocs int64
}
