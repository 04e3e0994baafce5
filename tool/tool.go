// Package tool provides the capability-tagged dispatch layer between agent
// nodes and their backends. A node declares a capability tag; the registry
// binds each tag to exactly one backend at start-up. Adding a backend means
// registering a new tag; node code never branches on backend identity.
package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
)

// Capability tags understood by the registry.
const (
	// CapabilityStatuteRetrieval searches the embedded statute corpus.
	CapabilityStatuteRetrieval = "statute_retrieval"

	// CapabilityCaseLawSearch searches hosted case-law databases.
	CapabilityCaseLawSearch = "case_law_search"
)

// DefaultInvokeTimeout bounds a single tool invocation.
const DefaultInvokeTimeout = 30 * time.Second

// Tool is one backend bound to a capability tag.
type Tool interface {
	// Name identifies the backend for logging.
	Name() string

	// Capability returns the tag this backend serves.
	Capability() string

	// Call executes the tool with a free-text query and returns a formatted
	// result suitable for prompt substitution.
	Call(ctx context.Context, query string) (string, error)
}

// Invocation records one tool call made during a node execution. It is
// ephemeral, scoped to that execution.
type Invocation struct {
	Capability string
	Query      string
	Result     string
	Err        error
}

// Registry dispatches invocations by capability tag.
type Registry struct {
	backends map[string]Tool
	timeout  time.Duration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Tool),
		timeout:  DefaultInvokeTimeout,
	}
}

// SetInvokeTimeout overrides the per-invocation timeout.
func (r *Registry) SetInvokeTimeout(d time.Duration) {
	r.timeout = d
}

// Register binds a backend to its capability tag. Binding a tag twice is a
// configuration error.
func (r *Registry) Register(t Tool) error {
	tag := t.Capability()
	if tag == "" {
		return fmt.Errorf("tool %s declares no capability", t.Name())
	}
	if existing, ok := r.backends[tag]; ok {
		return fmt.Errorf("capability %q already bound to %s", tag, existing.Name())
	}
	r.backends[tag] = t
	return nil
}

// Has reports whether a capability tag is bound.
func (r *Registry) Has(capability string) bool {
	_, ok := r.backends[capability]
	return ok
}

// Invoke dispatches a query to the backend bound to the capability tag. An
// unbound tag is a permanent error: it indicates miswiring, not a flaky
// backend.
func (r *Registry) Invoke(ctx context.Context, capability, query string) (string, error) {
	backend, ok := r.backends[capability]
	if !ok {
		return "", fault.Permanentf("no backend registered for capability %q", capability)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return backend.Call(callCtx, query)
}
