// Package backend provides HTTP adapters for the remote answering backends.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dualquery/orchestrator/internal/agent"
	"github.com/dualquery/orchestrator/internal/domain"
)

// Client invokes a remote answering backend over HTTP. The lexical
// self-assessment runs locally against the configured keyword table; only
// Run goes over the wire.
type Client struct {
	name       string
	baseURL    string
	predicate  *agent.KeywordPredicate
	httpClient *http.Client
}

var _ agent.Backend = (*Client)(nil)

// NewClient creates a backend client.
func NewClient(name, baseURL string, keywords []string, timeout time.Duration) *Client {
	return &Client{
		name:      name,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		predicate: agent.NewKeywordPredicate(keywords),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the agent tag for this backend.
func (c *Client) Name() string {
	return c.name
}

// CanHandle reports whether the query looks relevant to this backend.
func (c *Client) CanHandle(query string) bool {
	return c.predicate.Match(query)
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Success  bool                   `json:"success"`
	Response string                 `json:"response"`
	Error    string                 `json:"error,omitempty"`
	Items    []domain.RetrievedItem `json:"items,omitempty"`
}

// Run sends the query to the backend. Transport and protocol failures are
// folded into a failed result; Run never returns an error.
func (c *Client) Run(ctx context.Context, query string) domain.AgentResult {
	body, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return c.failure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return c.failure(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return c.failure(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return c.failure(fmt.Errorf("decode response: %w", err))
	}

	return domain.AgentResult{
		Success:  qr.Success,
		Response: qr.Response,
		Error:    qr.Error,
		Items:    qr.Items,
	}
}

func (c *Client) failure(err error) domain.AgentResult {
	return domain.AgentResult{
		Success:  false,
		Error:    err.Error(),
		Response: fmt.Sprintf("%s backend error: %v", c.name, err),
	}
}
