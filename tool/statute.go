package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/retrieval"
)

// StatuteRetrieval serves the statute_retrieval capability from a built
// retrieval index.
type StatuteRetrieval struct {
	index *retrieval.Index
	topK  int
}

// NewStatuteRetrieval creates the statute retrieval tool. topK <= 0 selects
// the index default.
func NewStatuteRetrieval(index *retrieval.Index, topK int) *StatuteRetrieval {
	return &StatuteRetrieval{index: index, topK: topK}
}

var _ Tool = (*StatuteRetrieval)(nil)

// Name returns the name of the tool.
func (s *StatuteRetrieval) Name() string {
	return "Statute_Corpus_Search"
}

// Capability returns the tag this backend serves.
func (s *StatuteRetrieval) Capability() string {
	return CapabilityStatuteRetrieval
}

// Call queries the index and formats the ranked sections for prompt use.
// An unbuilt index is a permanent failure: the capability is unavailable,
// and retrying will not build it.
func (s *StatuteRetrieval) Call(ctx context.Context, query string) (string, error) {
	results, err := s.index.Query(ctx, query, s.topK)
	if err != nil {
		if errors.Is(err, retrieval.ErrIndexNotReady) {
			return "", fault.Permanent(err)
		}
		return "", fmt.Errorf("statute search failed: %w", err)
	}

	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. Section %s: %s (relevance %.4f)\n%s\n\n",
			i+1, r.Section.SectionNumber, r.Section.Title, r.Score, r.Section.BodyText))
	}
	return strings.TrimSpace(sb.String()), nil
}
