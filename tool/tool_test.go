package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
)

type stubTool struct {
	name       string
	capability string
	result     string
	err        error
}

func (s *stubTool) Name() string       { return s.name }
func (s *stubTool) Capability() string { return s.capability }
func (s *stubTool) Call(ctx context.Context, query string) (string, error) {
	return s.result, s.err
}

func TestRegistry_RegisterAndInvoke(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{name: "stub", capability: CapabilityStatuteRetrieval, result: "sections"}))

	assert.True(t, r.Has(CapabilityStatuteRetrieval))
	assert.False(t, r.Has(CapabilityCaseLawSearch))

	out, err := r.Invoke(context.Background(), CapabilityStatuteRetrieval, "theft")
	require.NoError(t, err)
	assert.Equal(t, "sections", out)
}

func TestRegistry_DuplicateCapability(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{name: "first", capability: CapabilityStatuteRetrieval}))

	err := r.Register(&stubTool{name: "second", capability: CapabilityStatuteRetrieval})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already bound to first")
}

func TestRegistry_EmptyCapability(t *testing.T) {
	r := NewRegistry()
	err := r.Register(&stubTool{name: "untagged"})
	assert.Error(t, err)
}

func TestRegistry_UnboundCapabilityIsPermanent(t *testing.T) {
	r := NewRegistry()
	_, err := r.Invoke(context.Background(), CapabilityCaseLawSearch, "q")
	require.Error(t, err)
	assert.True(t, fault.IsPermanent(err))
}

func TestRegistry_BackendErrorPassesThrough(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubTool{
		name:       "flaky",
		capability: CapabilityCaseLawSearch,
		err:        fault.Transientf("upstream 503"),
	}))

	_, err := r.Invoke(context.Background(), CapabilityCaseLawSearch, "q")
	require.Error(t, err)
	assert.True(t, fault.IsTransient(err))
}
