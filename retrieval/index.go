// Package retrieval implements the statute retrieval index: an in-memory
// nearest-neighbor search over embedded statute sections. The index is built
// offline from a corpus file and rebuilt wholesale, never patched, so a
// query observes either the old snapshot or the fully rebuilt one.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/llm"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/log"
)

// DefaultK is the number of sections returned when the caller does not
// override k.
const DefaultK = 3

// ErrIndexNotReady is returned when querying an index that has not been
// built, or whose corpus is empty. An unready index never silently returns
// an empty success.
var ErrIndexNotReady = errors.New("retrieval index not ready: build it from a corpus first")

// Result is one ranked section returned by a query.
type Result struct {
	Section StatuteSection
	Score   float64
}

// snapshot is an immutable build of the corpus. Rebuilds swap the whole
// snapshot under the write lock.
type snapshot struct {
	sections []StatuteSection
	byID     map[string]StatuteSection
}

// Index is the embedding-indexed statute search structure. It is safe for
// concurrent queries from multiple runs; Build is exclusive with queries.
type Index struct {
	embedder llm.Embedder

	mu   sync.RWMutex
	snap *snapshot
}

// NewIndex creates an unbuilt index over the given embedder. The same
// embedder serves build and query.
func NewIndex(embedder llm.Embedder) *Index {
	return &Index{embedder: embedder}
}

// Build embeds every section body and swaps in a fresh snapshot. Building
// from the same corpus twice yields functionally equivalent results.
func (idx *Index) Build(ctx context.Context, corpus []StatuteSection) error {
	sections := make([]StatuteSection, len(corpus))
	byID := make(map[string]StatuteSection, len(corpus))

	for i, s := range corpus {
		emb, err := idx.embedder.Embed(ctx, s.BodyText)
		if err != nil {
			return fmt.Errorf("failed to embed section %s: %w", s.ID, err)
		}
		s.Embedding = emb
		sections[i] = s
		byID[s.ID] = s
	}

	idx.mu.Lock()
	idx.snap = &snapshot{sections: sections, byID: byID}
	idx.mu.Unlock()

	log.Info("retrieval index built with %d sections", len(sections))
	return nil
}

// Query embeds the text and returns up to k sections ordered by descending
// similarity score, ties broken by ascending section number so downstream
// prompts see a reproducible ordering. k <= 0 selects DefaultK.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]Result, error) {
	idx.mu.RLock()
	snap := idx.snap
	idx.mu.RUnlock()

	if snap == nil || len(snap.sections) == 0 {
		return nil, ErrIndexNotReady
	}
	if k <= 0 {
		k = DefaultK
	}

	queryEmb, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results := make([]Result, len(snap.sections))
	for i, s := range snap.sections {
		results[i] = Result{
			Section: s,
			Score:   cosineSimilarity(queryEmb, s.Embedding),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return lessSectionNumber(results[i].Section.SectionNumber, results[j].Section.SectionNumber)
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Section returns the indexed section with the given ID.
func (idx *Index) Section(id string) (StatuteSection, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.snap == nil {
		return StatuteSection{}, false
	}
	s, ok := idx.snap.byID[id]
	return s, ok
}

// Len returns the number of indexed sections.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.snap == nil {
		return 0
	}
	return len(idx.snap.sections)
}

// lessSectionNumber orders section numbers by (numeric prefix, suffix), so
// "34A" sorts between "34" and "35" and mixed numbered and lettered sections
// compare consistently. The comparison is a total order, which sort requires.
func lessSectionNumber(a, b string) bool {
	na, ra := splitSectionNumber(a)
	nb, rb := splitSectionNumber(b)
	if na != nb {
		return na < nb
	}
	return ra < rb
}

// splitSectionNumber breaks a section number into its leading integer and the
// remaining suffix: "34A" becomes (34, "A"). Section numbers without a
// leading digit sort after all numbered sections.
func splitSectionNumber(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if i == 0 || err != nil {
		return math.MaxInt, s
	}
	return n, s[i:]
}

// cosineSimilarity calculates cosine similarity between two float32 vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct float64
	var normA float64
	var normB float64

	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
