package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/retrieval"
)

// keywordEmbedder maps texts to fixed vectors so similarity is predictable.
type keywordEmbedder struct {
	vectors map[string][]float32
	fallback []float32
}

func (e *keywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return e.fallback, nil
}

func builtIndex(t *testing.T) *retrieval.Index {
	t.Helper()
	emb := &keywordEmbedder{
		vectors: map[string][]float32{
			"Whoever commits theft shall be punished.": {1, 0, 0},
			"Whoever commits robbery shall be punished.": {0, 1, 0},
			"theft query": {1, 0, 0},
		},
		fallback: []float32{0, 0, 1},
	}
	idx := retrieval.NewIndex(emb)
	err := idx.Build(context.Background(), []retrieval.StatuteSection{
		{ID: "ipc-378", SectionNumber: "378", Title: "Theft", BodyText: "Whoever commits theft shall be punished."},
		{ID: "ipc-390", SectionNumber: "390", Title: "Robbery", BodyText: "Whoever commits robbery shall be punished."},
	})
	require.NoError(t, err)
	return idx
}

func TestStatuteRetrieval_FormatsRankedSections(t *testing.T) {
	s := NewStatuteRetrieval(builtIndex(t), 2)

	out, err := s.Call(context.Background(), "theft query")
	require.NoError(t, err)

	assert.Contains(t, out, "1. Section 378: Theft")
	assert.Contains(t, out, "Whoever commits theft shall be punished.")
	assert.Contains(t, out, "2. Section 390: Robbery")
}

func TestStatuteRetrieval_UnbuiltIndexIsPermanent(t *testing.T) {
	s := NewStatuteRetrieval(retrieval.NewIndex(&keywordEmbedder{fallback: []float32{1}}), 3)

	_, err := s.Call(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, fault.IsPermanent(err))
}
