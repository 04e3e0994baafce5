package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abhimh33/Multi-Agent-Legal-Assistance-System/fault"
)

// CaseLawSearch serves the case_law_search capability through a Serper-style
// web search API, with results restricted to a case-law domain.
type CaseLawSearch struct {
	APIKey  string
	BaseURL string
	Domain  string
	Count   int
	Client  *http.Client
}

// CaseLawOption configures a CaseLawSearch.
type CaseLawOption func(*CaseLawSearch)

// WithCaseLawBaseURL sets the search API endpoint.
func WithCaseLawBaseURL(baseURL string) CaseLawOption {
	return func(c *CaseLawSearch) {
		c.BaseURL = baseURL
	}
}

// WithCaseLawDomain sets the domain filter for results.
func WithCaseLawDomain(domain string) CaseLawOption {
	return func(c *CaseLawSearch) {
		c.Domain = domain
	}
}

// WithCaseLawCount sets the number of results to request (1-10).
func WithCaseLawCount(count int) CaseLawOption {
	return func(c *CaseLawSearch) {
		if count < 1 {
			count = 1
		}
		if count > 10 {
			count = 10
		}
		c.Count = count
	}
}

// WithCaseLawClient sets a custom HTTP client.
func WithCaseLawClient(client *http.Client) CaseLawOption {
	return func(c *CaseLawSearch) {
		c.Client = client
	}
}

// NewCaseLawSearch creates a new case-law search tool.
// If apiKey is empty, it tries to read from SERPER_API_KEY environment variable.
func NewCaseLawSearch(apiKey string, opts ...CaseLawOption) (*CaseLawSearch, error) {
	if apiKey == "" {
		apiKey = os.Getenv("SERPER_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("SERPER_API_KEY not set")
	}

	c := &CaseLawSearch{
		APIKey:  apiKey,
		BaseURL: "https://google.serper.dev/search",
		Domain:  "indiankanoon.org",
		Count:   5,
		Client:  &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

var _ Tool = (*CaseLawSearch)(nil)

// Name returns the name of the tool.
func (c *CaseLawSearch) Name() string {
	return "Case_Law_Search"
}

// Capability returns the tag this backend serves.
func (c *CaseLawSearch) Capability() string {
	return CapabilityCaseLawSearch
}

// searchResponse mirrors the fields we read from the search API.
type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Call executes the search restricted to the configured domain and formats
// the ranked snippets for prompt use.
func (c *CaseLawSearch) Call(ctx context.Context, query string) (string, error) {
	q := query
	if c.Domain != "" {
		q = fmt.Sprintf("%s site:%s", query, c.Domain)
	}

	payload, err := json.Marshal(map[string]any{
		"q":   q,
		"num": c.Count,
	})
	if err != nil {
		return "", fault.Permanentf("failed to encode search request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fault.Permanentf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fault.Transientf("search request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fault.Transientf("search api returned status %d", resp.StatusCode)
	default:
		return "", fault.Permanentf("search api returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fault.Transientf("failed to decode search response: %v", err)
	}

	var sb strings.Builder
	for i, r := range result.Organic {
		sb.WriteString(fmt.Sprintf("%d. Case: %s\nURL: %s\nSummary: %s\n\n",
			i+1, stripMarkup(r.Title), r.Link, stripMarkup(r.Snippet)))
	}

	if sb.Len() == 0 {
		return "No matching precedent cases found", nil
	}

	return strings.TrimSpace(sb.String()), nil
}

// stripMarkup removes HTML fragments that search snippets often carry
// (highlight tags, entities) so prompts receive plain text.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
