package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoNode(name string, upstream ...string) Node {
	return Node{
		Name:     name,
		Upstream: upstream,
		Run: func(ctx context.Context, inputs map[string]string) (Output, error) {
			return Output{Payload: name}, nil
		},
	}
}

func TestNew_ValidGraph(t *testing.T) {
	g, err := New("test", []Node{
		echoNode("a", StageInput),
		echoNode("b", "a"),
		echoNode("c", "a"),
		echoNode("d", "b", "c"),
	})
	require.NoError(t, err)
	assert.Equal(t, "test", g.Name())
	assert.Len(t, g.Nodes(), 4)
}

func TestNew_DuplicateStage(t *testing.T) {
	_, err := New("test", []Node{
		echoNode("a", StageInput),
		echoNode("a", StageInput),
	})
	assert.ErrorIs(t, err, ErrDuplicateStage)
}

func TestNew_ReservedStageName(t *testing.T) {
	_, err := New("test", []Node{echoNode(StageInput)})
	assert.ErrorIs(t, err, ErrDuplicateStage)
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("test", []Node{echoNode("")})
	assert.Error(t, err)
}

func TestNew_NilRun(t *testing.T) {
	_, err := New("test", []Node{{Name: "a"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no run function")
}

func TestNew_UnknownUpstream(t *testing.T) {
	_, err := New("test", []Node{echoNode("a", "missing")})
	assert.ErrorIs(t, err, ErrUnknownUpstream)
}

func TestNew_InputUpstreamIsImplicit(t *testing.T) {
	_, err := New("test", []Node{echoNode("a", StageInput)})
	assert.NoError(t, err)
}

func TestNew_Cycle(t *testing.T) {
	_, err := New("test", []Node{
		echoNode("a", "b"),
		echoNode("b", "a"),
	})
	assert.ErrorIs(t, err, ErrCycle)
}

func TestNew_SelfCycle(t *testing.T) {
	_, err := New("test", []Node{echoNode("a", "a")})
	assert.ErrorIs(t, err, ErrCycle)
}
