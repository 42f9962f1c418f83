package advisor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/theirongolddev/ada/internal/model"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubClient(fn roundTripFunc) *Client {
	c := NewClient("https://advisor.test/ask", 0)
	c.http = &http.Client{Transport: fn}
	return c
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestAskPostsRequestBody(t *testing.T) {
	var seen Request
	var method, contentType string
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		method = req.Method
		contentType = req.Header.Get("Content-Type")
		if err := json.NewDecoder(req.Body).Decode(&seen); err != nil {
			t.Errorf("decode body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"response":"Pay off the card first."}`), nil
	})

	in := model.FinancialInputs{Income: 2000, MonthlyInvestment: 200, HorizonYears: 5}
	resp, err := c.Ask(context.Background(), Request{Mode: "personal", Question: "Should I invest?", PersonalData: &in})
	if err != nil {
		t.Fatalf("Ask() unexpected error: %v", err)
	}
	if resp.Response != "Pay off the card first." {
		t.Fatalf("Ask() = %q", resp.Response)
	}
	if method != http.MethodPost || contentType != "application/json" {
		t.Fatalf("request = %s %q, want POST application/json", method, contentType)
	}
	if seen.Mode != "personal" || seen.PersonalData == nil || seen.PersonalData.Income != 2000 {
		t.Fatalf("server saw %+v", seen)
	}
}

func TestAskGeneralSendsNullPersonalData(t *testing.T) {
	var raw string
	c := stubClient(func(req *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(req.Body)
		raw = string(b)
		return jsonResponse(http.StatusOK, `{"response":"ok"}`), nil
	})
	if _, err := c.Ask(context.Background(), Request{Mode: "general", Question: "What is an ISA?"}); err != nil {
		t.Fatalf("Ask() unexpected error: %v", err)
	}
	if !strings.Contains(raw, `"personalData":null`) {
		t.Fatalf("body = %s, want personalData null", raw)
	}
}

func TestAskErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		rt   roundTripFunc
		want error
	}{
		{
			name: "transport",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			want: ErrNetwork,
		},
		{
			name: "bad gateway with message",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, `{"error":"upstream down"}`), nil
			},
			want: ErrServer,
		},
		{
			name: "plain 500",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `oops`), nil
			},
			want: ErrServer,
		},
		{
			name: "malformed body",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `not json`), nil
			},
			want: ErrServer,
		},
		{
			name: "empty answer",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"response":"  "}`), nil
			},
			want: ErrEmptyAnswer,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stubClient(tc.rt).Ask(context.Background(), Request{Mode: "general"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("Ask() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAskServerMessageIsSurfaced(t *testing.T) {
	c := stubClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `{"error":"upstream down"}`), nil
	})
	_, err := c.Ask(context.Background(), Request{Mode: "general"})
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("Ask() error = %v, want server message", err)
	}
}

func TestEmptyAnswerIsServerError(t *testing.T) {
	if !errors.Is(ErrEmptyAnswer, ErrServer) {
		t.Fatal("ErrEmptyAnswer should wrap ErrServer")
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("  ", 0)
	if c.Endpoint() != DefaultEndpoint {
		t.Fatalf("Endpoint() = %q, want %q", c.Endpoint(), DefaultEndpoint)
	}
	if c.http.Timeout != defaultTimeout {
		t.Fatalf("timeout = %v, want %v", c.http.Timeout, defaultTimeout)
	}
}
