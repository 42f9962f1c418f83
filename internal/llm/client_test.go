package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func TestCompleteSendsSamplingOptions(t *testing.T) {
	var got chatRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Keep an emergency fund."}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", " hf_test ", DefaultOptions())
	answer, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if answer != "Keep an emergency fund." {
		t.Fatalf("Complete() = %q, want %q", answer, "Keep an emergency fund.")
	}
	if path != "/chat/completions" {
		t.Fatalf("path = %q, want /chat/completions", path)
	}
	if auth != "Bearer hf_test" {
		t.Fatalf("Authorization = %q, want %q", auth, "Bearer hf_test")
	}
	if got.Model != "google/gemma-2-2b-it:nebius" {
		t.Fatalf("model = %q, want provider-qualified default", got.Model)
	}
	if got.MaxTokens != 512 || got.Temperature != 0.3 || got.TopP != 0.9 {
		t.Fatalf("sampling = (%d, %v, %v), want (512, 0.3, 0.9)", got.MaxTokens, got.Temperature, got.TopP)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Fatalf("messages = %+v, want one user message", got.Messages)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	answer, err := NewClient(srv.URL, "k", Options{}).Complete(context.Background(), nil)
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if answer != "" {
		t.Fatalf("Complete() = %q, want empty", answer)
	}
}

func TestCompleteStatusErrors(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := NewClient(srv.URL, "k", Options{}).Complete(context.Background(), nil)
		srv.Close()
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestCompleteServerErrorIsNotTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k", Options{}).Complete(context.Background(), nil)
	if err == nil {
		t.Fatal("Complete() error = nil, want non-nil")
	}
	if errors.Is(err, ErrTransport) {
		t.Fatalf("Complete() error = %v, should not be a transport error", err)
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k", Options{}).Complete(context.Background(), nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("Complete() error = %v, want ErrTransport", err)
	}
}

func TestModelIDWithoutProvider(t *testing.T) {
	c := NewClient("", "k", Options{Model: "m"})
	if c.ModelID() != "m" {
		t.Fatalf("ModelID() = %q, want %q", c.ModelID(), "m")
	}
	if c.baseURL != DefaultBaseURL {
		t.Fatalf("baseURL = %q, want default", c.baseURL)
	}
}
