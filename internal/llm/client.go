// Package llm is a minimal client for OpenAI-compatible chat-completions
// endpoints, such as the Hugging Face inference router.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	// DefaultBaseURL is the Hugging Face OpenAI-compatible router.
	DefaultBaseURL = "https://router.huggingface.co/v1"
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "google/gemma-2-2b-it"

	requestTimeout = 60 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the API key is missing, expired or invalid.
	ErrUnauthorized = errors.New("llm: unauthorized (API key missing or invalid)")
	// ErrRateLimited indicates the provider rate limit was hit.
	ErrRateLimited = errors.New("llm: rate limited")
	// ErrTransport indicates the provider could not be reached.
	ErrTransport = errors.New("llm: transport error")
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are the sampling parameters sent with every completion.
type Options struct {
	Model       string
	Provider    string // appended to the model as "model:provider" when set
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// DefaultOptions mirrors the advisor's tuned sampling settings.
func DefaultOptions() Options {
	return Options{
		Model:       DefaultModel,
		Provider:    "nebius",
		MaxTokens:   512,
		Temperature: 0.3,
		TopP:        0.9,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Client sends chat completions with bearer authentication.
type Client struct {
	baseURL string
	apiKey  string
	opts    Options
	http    *http.Client
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL, apiKey string, opts Options) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(opts.Model) == "" {
		opts.Model = DefaultModel
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		opts:    opts,
		http:    &http.Client{},
	}
}

// ModelID is the model string sent to the provider.
func (c *Client) ModelID() string {
	if c.opts.Provider == "" {
		return c.opts.Model
	}
	return c.opts.Model + ":" + c.opts.Provider
}

// Complete returns the content of the first choice, or "" when the provider
// returned no choices.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model:       c.ModelID(),
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
		TopP:        c.opts.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("llm: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// The key only ever travels in this header; it is never echoed in errors.
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrUnauthorized
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return "", fmt.Errorf("llm: unexpected status %d: %s", resp.StatusCode, snippet)
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("llm: parsing response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}
