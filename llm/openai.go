package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompleter implements Completer using the OpenAI chat completion API
// directly. Unlike the langchaingo adapter it sees structured API errors, so
// transient/permanent classification is exact.
type OpenAICompleter struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewOpenAICompleter creates a completer for the given API key and model.
// An empty model defaults to gpt-4o-mini.
func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICompleter{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: 0.2,
		timeout:     DefaultTimeout,
	}
}

var _ Completer = (*OpenAICompleter)(nil)

// Complete generates text with the role context as the system message.
func (c *OpenAICompleter) Complete(ctx context.Context, role, prompt string) (string, error) {
	callCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: role},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fault.Permanentf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	timeout time.Duration
}

// NewOpenAIEmbedder creates an embedder for the given API key. An empty
// model defaults to text-embedding-3-small.
func NewOpenAIEmbedder(apiKey string, model openai.EmbeddingModel) *OpenAIEmbedder {
	if model == "" {
		model = openai.SmallEmbedding3
	}
	return &OpenAIEmbedder{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: DefaultTimeout,
	}
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// Embed computes the embedding vector for a text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := withTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, classifyAPIError(err)
	}
	if len(resp.Data) == 0 {
		return nil, fault.Permanentf("embedding response contained no data")
	}
	return resp.Data[0].Embedding, nil
}

// classifyAPIError maps OpenAI API errors by HTTP status: 429 and 5xx are
// transient, other API errors are permanent, everything else falls back to
// the generic classifier.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fault.Transient(err)
		case apiErr.HTTPStatusCode >= 500:
			return fault.Transient(err)
		default:
			return fault.Permanent(err)
		}
	}
	return classify(err)
}
