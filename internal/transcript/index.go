package transcript

import (
	"math"
	"strings"
)

// WordTimestamp is one recognized word with its start/end offset in seconds
// relative to the beginning of the audio asset.
type WordTimestamp struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SearchResult is a single match of a query against the index. Index is the
// 1-based position of the word within the full timestamp sequence.
type SearchResult struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Index int     `json:"index"`
}

const (
	// DefaultEpsilon is the timestamp granularity used to drop repeated
	// matches at effectively the same instant.
	DefaultEpsilon = 0.1
	// DefaultLimit caps the number of results returned by one search.
	DefaultLimit = 50
)

// Index holds the word-level timing data of one transcription and answers
// substring search queries against it.
type Index struct {
	words   []WordTimestamp
	epsilon float64
	limit   int
}

// NewIndex creates an empty index with default dedup epsilon and result cap.
func NewIndex() *Index {
	return &Index{epsilon: DefaultEpsilon, limit: DefaultLimit}
}

// Replace swaps in a new timestamp sequence, discarding the old one.
// A nil or empty sequence is valid and represents "no timestamps available".
func (ix *Index) Replace(words []WordTimestamp) {
	ix.words = words
}

// Len returns the number of held timestamps.
func (ix *Index) Len() int {
	return len(ix.words)
}

// Search returns matches of query against the held words in temporal order.
// Matching is case-insensitive substring containment, so partial-word
// queries work ("hell" matches "hello"). Matches whose start rounds to an
// already-seen epsilon step are dropped, at most limit results are returned.
// An empty query yields an empty result set.
func (ix *Index) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	res := []SearchResult{}
	if q == "" {
		return res
	}
	seen := map[int64]bool{}
	for i, w := range ix.words {
		if !strings.Contains(strings.ToLower(w.Word), q) {
			continue
		}
		key := int64(math.Round(w.Start / ix.epsilon))
		if seen[key] {
			continue
		}
		seen[key] = true
		res = append(res, SearchResult{Word: w.Word, Start: w.Start, End: w.End, Index: i + 1})
		if len(res) >= ix.limit {
			break
		}
	}
	return res
}

// Count returns the number of words matching query before dedup and
// capping, for "first 50 of N" style indicators.
func (ix *Index) Count(query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	res := 0
	for _, w := range ix.words {
		if strings.Contains(strings.ToLower(w.Word), q) {
			res++
		}
	}
	return res
}
