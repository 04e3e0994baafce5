package llm

import (
	"context"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	"github.com/tmc/langchaingo/llms"
)

// LangChainCompleter adapts any langchaingo llms.Model to the Completer
// interface. This is the primary adapter: every langchaingo provider
// (OpenAI, Groq, Ollama, ...) plugs in without further glue.
type LangChainCompleter struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

// LangChainOption configures a LangChainCompleter.
type LangChainOption func(*LangChainCompleter)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) LangChainOption {
	return func(c *LangChainCompleter) {
		c.temperature = t
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) LangChainOption {
	return func(c *LangChainCompleter) {
		c.timeout = d
	}
}

// NewLangChainCompleter wraps a langchaingo model.
func NewLangChainCompleter(model llms.Model, opts ...LangChainOption) *LangChainCompleter {
	c := &LangChainCompleter{
		model:       model,
		temperature: 0.2,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Completer = (*LangChainCompleter)(nil)

// Complete generates text with the role context as the system message.
func (c *LangChainCompleter) Complete(ctx context.Context, role, prompt string) (string, error) {
	callCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(role)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := c.model.GenerateContent(callCtx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fault.Permanentf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}
