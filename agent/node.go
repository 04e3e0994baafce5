// Package agent defines pipeline stages as role-specialized language-model
// calls. A Spec is static configuration: a role context, a prompt template
// over upstream stage outputs, and an optional tool capability. Binding a
// Spec against a completer and tool registry produces an executable graph
// node.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/graph"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/llm"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/tool"
)

// ToolResultPlaceholder is the template placeholder replaced with the tool
// invocation result.
const ToolResultPlaceholder = "{tool_result}"

// Spec is the immutable configuration of one agent node. Specs are
// constructed once at process start and shared read-only across concurrent
// runs.
type Spec struct {
	// Name is the stage name this node writes.
	Name string

	// Upstream lists the stages whose outputs feed the prompt template.
	Upstream []string

	// Role is the system-message role context for the completion call.
	Role string

	// Template is the prompt with {stage} placeholders for each upstream
	// stage, plus {tool_result} when a capability is declared.
	Template string

	// Capability optionally names a tool capability. When set, the node
	// issues exactly one tool invocation before composing the prompt.
	Capability string

	// ToolQueryStage names the upstream stage whose output becomes the tool
	// query. Empty selects the first upstream stage.
	ToolQueryStage string

	// Gate marks this node as a validation gate: its completion output is
	// parsed into a verdict that drives the executor's branching.
	Gate bool
}

// Bind resolves a spec against its collaborators and returns the executable
// graph node. A declared capability with no registered backend is a
// configuration error, caught here at start-up rather than mid-run.
func (s Spec) Bind(completer llm.Completer, tools *tool.Registry) (graph.Node, error) {
	if s.Name == "" {
		return graph.Node{}, fmt.Errorf("agent spec with empty name")
	}
	if s.Capability != "" {
		if tools == nil || !tools.Has(s.Capability) {
			return graph.Node{}, fmt.Errorf("agent %s: capability %q has no registered backend", s.Name, s.Capability)
		}
	}

	queryStage := s.ToolQueryStage
	if queryStage == "" && len(s.Upstream) > 0 {
		queryStage = s.Upstream[0]
	}

	spec := s
	return graph.Node{
		Name:     s.Name,
		Upstream: s.Upstream,
		Run: func(ctx context.Context, inputs map[string]string) (graph.Output, error) {
			return spec.execute(ctx, completer, tools, queryStage, inputs)
		},
	}, nil
}

// execute performs the node's single tool invocation (if any), composes the
// prompt, and delegates generation to the completion adapter.
func (s Spec) execute(ctx context.Context, completer llm.Completer, tools *tool.Registry, queryStage string, inputs map[string]string) (graph.Output, error) {
	var inv tool.Invocation
	if s.Capability != "" {
		inv.Capability = s.Capability
		inv.Query = inputs[queryStage]
		inv.Result, inv.Err = tools.Invoke(ctx, s.Capability, inv.Query)
		if inv.Err != nil {
			// No silent fallback to an empty tool result.
			return graph.Output{}, fmt.Errorf("tool invocation (%s): %w", s.Capability, inv.Err)
		}
	}

	prompt := s.composePrompt(inputs, inv.Result)

	text, err := completer.Complete(ctx, s.Role, prompt)
	if err != nil {
		return graph.Output{}, fmt.Errorf("completion: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return graph.Output{}, fault.Permanentf("completion returned empty output")
	}

	out := graph.Output{Payload: text}
	if s.Gate {
		out.Verdict = ParseVerdict(text)
	}
	return out, nil
}

// composePrompt substitutes upstream outputs and the tool result into the
// template.
func (s Spec) composePrompt(inputs map[string]string, toolResult string) string {
	pairs := make([]string, 0, 2*len(inputs)+2)
	for stage, payload := range inputs {
		pairs = append(pairs, "{"+stage+"}", payload)
	}
	if s.Capability != "" {
		pairs = append(pairs, ToolResultPlaceholder, toolResult)
	}
	return strings.NewReplacer(pairs...).Replace(s.Template)
}
