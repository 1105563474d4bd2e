// Package demo serves a fixed in-memory dataset with keyword-adjusted scores,
// for trying the API without a vector store.
package demo

import (
	"strings"

	"github.com/kailas-cloud/semsearch/internal/domain/search/result"
)

// Score adjustments.
const (
	exactBoost   = 1.2
	exactCap     = 0.99
	topicBoost   = 1.1
	topicCap     = 0.95
	noMatchDecay = 0.7
)

type entry struct {
	id       string
	score    float64
	content  string
	metadata result.Metadata
}

var dataset = []entry{
	{
		id:    "jmi-newsletter-1",
		score: 0.92,
		content: "# James Madison Intermediate School | Smore Newsletters\n" +
			"\n" +
			"Table of Contents vertical_align_top\n" +
			"\n" +
			"[SCIENCE FAIR REMINDERS](#bb2dy8flk7)\n" +
			"[FEBRUARY IS THE MONTH OF KINDNESS AT JMI](#bprmklsur4)\n" +
			"[VALENTINE'S DAY REMINDERS FOR JMI](#bd988o7zgj)\n" +
			"[JMI'S 2ND ANNUAL VOCABULARY PARADE](#bjo73hlunw)\n" +
			"[JMI FAMILY HANDBOOK 2024-2025](#bgu50p3rin)\n" +
			"[JMI SUNDAY UPDATES](#b4h22sz2sz)\n" +
			"\n" +
			"# James Madison Intermediate School\n" +
			"\n" +
			"## FEBRUARY 2025\n" +
			"\n" +
			"# February 2025\n" +
			"\n" +
			"\"Let your KNIGHT Light Shine Bright!\"",
		metadata: result.Metadata{
			DocumentID: "8b161afb-4d6a-4ce1-a113-3dbccc2da79d",
			FileName:   "jmi-newsletter-feb-2025.md",
			FileType:   "text/markdown",
			Topic:      "school newsletter",
		},
	},
	{
		id:    "jmi-events-1",
		score: 0.87,
		content: "## JMI STEM Night -6:00 p.m.\n" +
			"\n" +
			"Guest Reader Day\n" +
			"Green Eggs and Ham Day! Wear Green!\n" +
			"Golden Knight Luncheon\n" +
			"Reading Jogs the Mind! Wear Workout Attire!\n" +
			"Rutgers's Women Lacrosse Visit\n" +
			"Thing 1 and 2 Day! Wear Matching Outfits with a friend or more!\n" +
			"If I Ran the Zoo Day! Wear Animal Print!\n" +
			"Let's Have a Parade! Dress up as the word you Choose for the Vocabulary Parade!",
		metadata: result.Metadata{
			DocumentID: "fb83a294-cf85-4298-9b4e-af30783e8894",
			FileName:   "march-2025-calendar.md",
			FileType:   "text/markdown",
			Topic:      "school events",
		},
	},
	{
		id:    "jmi-departments-1",
		score: 0.78,
		content: "#### GIFTED AND TALENTED\n" +
			"\n" +
			"[Please click here to view the February Newsletter from Mrs. Lehrman.]\n" +
			"\n" +
			"#### STRINGS\n" +
			"\n" +
			"[Please click here to view the February Newsletter from Mrs. Biscocho.]\n" +
			"\n" +
			"#### SPANISH\n" +
			"\n" +
			"[Please click here to view the February Newsletter from Sra. Nunez.]\n" +
			"\n" +
			"#### PHYSICAL EDUCATION\n" +
			"\n" +
			"[Please click here to view the February Newsletter from Mr. Molnar and Mr. Morales.]\n" +
			"\n" +
			"#### RESPONSE TO INTERVENTION (Math and Reading)\n" +
			"\n" +
			"[Please click here to view the February Newsletter from Mrs. Rudnick and Mrs. Zapoticzny.]",
		metadata: result.Metadata{
			DocumentID: "8b161afb-4d6a-4ce1-a113-3dbccc2da79d",
			FileName:   "jmi-departments.md",
			FileType:   "text/markdown",
			Topic:      "school departments",
		},
	},
	{
		id:    "pinecone-info-1",
		score: 0.89,
		content: "Pinecone is a vector database that makes it easy to build high-performance vector search applications. " +
			"It provides scalable vector storage with fast, approximate nearest neighbor search capabilities.",
		metadata: result.Metadata{
			DocumentID: "pinecone-doc-1",
			FileName:   "pinecone-overview.md",
			FileType:   "text/markdown",
			Topic:      "databases",
		},
	},
	{
		id:    "semantic-search-1",
		score: 0.82,
		content: "Semantic search understands the intent and contextual meaning of search queries rather than just matching keywords. " +
			"It uses embeddings to represent the meaning of text in a high-dimensional vector space.",
		metadata: result.Metadata{
			DocumentID: "semantic-doc-1",
			FileName:   "semantic-search-overview.md",
			FileType:   "text/markdown",
			Topic:      "search technology",
		},
	},
}

// Search scores every entry against query and returns them by descending score.
// An empty query keeps the stored scores.
func Search(query string) []result.Result {
	q := strings.ToLower(query)
	out := make([]result.Result, 0, len(dataset))
	for _, e := range dataset {
		score := e.score
		if q != "" {
			score = adjust(e, q)
		}
		out = append(out, result.New(e.id, score, e.content, e.metadata))
	}
	result.SortByScore(out)
	return out
}

// Top returns at most topK results of Search.
func Top(query string, topK int) []result.Result {
	rs := Search(query)
	if topK >= 0 && topK < len(rs) {
		rs = rs[:topK]
	}
	return rs
}

func adjust(e entry, q string) float64 {
	content := strings.ToLower(e.content)
	switch {
	case strings.Contains(content, q):
		return min(e.score*exactBoost, exactCap)
	case strings.Contains(strings.ToLower(e.metadata.Topic), q):
		return min(e.score*topicBoost, topicCap)
	}
	for _, term := range strings.Split(q, " ") {
		if strings.Contains(content, term) {
			return e.score
		}
	}
	return e.score * noMatchDecay
}
