package advisor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	// DefaultEndpoint is where `ada serve` listens by default.
	DefaultEndpoint = "http://127.0.0.1:8000/ask"
	defaultTimeout  = 60 * time.Second
	maxBodySize     = 1 << 20 // 1 MB
)

// Client calls a remote /ask endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for endpoint. A zero timeout uses 60s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// Ask posts req and returns the answer. Transport failures wrap ErrNetwork;
// non-2xx statuses and malformed bodies wrap ErrServer.
func (c *Client) Ask(ctx context.Context, req Request) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("advisor: encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("advisor: creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "github.com/theirongolddev/ada/1.0")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{}, fmt.Errorf("%w: reading response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			return Response{}, fmt.Errorf("%w: status %d: %s", ErrServer, resp.StatusCode, eb.Error)
		}
		return Response{}, fmt.Errorf("%w: unexpected status %d", ErrServer, resp.StatusCode)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return Response{}, fmt.Errorf("%w: parsing response: %v", ErrServer, err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return Response{}, ErrEmptyAnswer
	}
	return out, nil
}
