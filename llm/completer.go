// Package llm adapts hosted language-model services behind two narrow
// interfaces: Completer for text generation and Embedder for embedding
// vectors. Failures are classified into the fault taxonomy so that callers
// can retry transient errors and surface permanent ones immediately.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
)

// DefaultTimeout bounds a single completion or embedding call.
const DefaultTimeout = 60 * time.Second

// Completer generates text for a role-specific prompt. The role context is
// passed as the system message; the prompt is the user message.
type Completer interface {
	Complete(ctx context.Context, role, prompt string) (string, error)
}

// Embedder computes a fixed-length embedding vector for a text. The same
// Embedder instance must serve index build and query, or similarity scores
// are meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// transientPatterns are error substrings that indicate a retryable failure
// from a completion backend whose errors carry no structured status.
var transientPatterns = []string{
	"rate limit",
	"429",
	"500",
	"502",
	"503",
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"EOF",
}

// classify maps a backend error into the fault taxonomy. Context timeouts
// and cancellations are transient; known retryable substrings are transient;
// everything else is permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Transient(err)
	}
	msg := err.Error()
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return fault.Transient(err)
		}
	}
	return fault.Permanent(err)
}

// withTimeout derives a bounded context for a single backend call.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}
