package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
)

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestClassify_DeadlineExceeded(t *testing.T) {
	err := classify(fmt.Errorf("call failed: %w", context.DeadlineExceeded))
	assert.True(t, fault.IsTransient(err))
}

func TestClassify_TransientPatterns(t *testing.T) {
	for _, msg := range []string{
		"openai: rate limit exceeded",
		"status 429 from upstream",
		"server returned 503",
		"dial tcp: connection refused",
		"read: connection reset by peer",
		"request timed out",
		"unexpected EOF",
	} {
		err := classify(errors.New(msg))
		assert.True(t, fault.IsTransient(err), "expected transient for %q", msg)
	}
}

func TestClassify_UnknownIsPermanent(t *testing.T) {
	for _, msg := range []string{
		"invalid api key",
		"model not found",
		"content policy violation",
	} {
		err := classify(errors.New(msg))
		assert.True(t, fault.IsPermanent(err), "expected permanent for %q", msg)
		assert.False(t, fault.IsTransient(err))
	}
}
