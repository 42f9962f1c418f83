// Package server exposes an advisor over HTTP for the web client and for
// `ada --endpoint` clients on other machines.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/theirongolddev/ada/internal/advisor"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	AllowedOrigins []string
	HistorySize    int
	Timeout        time.Duration
	// Backend names the upstream model in /v1/status.
	Backend string
}

// Exchange records one /ask call. Question text is never kept.
type Exchange struct {
	ID         int64     `json:"id"`
	At         time.Time `json:"at"`
	Mode       string    `json:"mode"`
	DurationMs int64     `json:"duration_ms"`
	Status     int       `json:"status"`
	Outcome    string    `json:"outcome"`
	Cached     bool      `json:"cached"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt    time.Time `json:"started_at"`
	Addr         string    `json:"addr"`
	Backend      string    `json:"backend,omitempty"`
	Requests     int64     `json:"requests"`
	Failures     int64     `json:"failures"`
	CacheHits    int64     `json:"cache_hits"`
	LastError    string    `json:"last_error,omitempty"`
	HistoryCount int       `json:"history_count"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Service answers /ask requests with an advisor.Asker.
type Service struct {
	cfg   Config
	asker advisor.Asker

	mu        sync.RWMutex
	startedAt time.Time
	requests  int64
	failures  int64
	cacheHits int64
	lastError string
	nextID    int64
	history   []Exchange
}

// New returns a service with the provided config.
func New(cfg Config, asker advisor.Asker) *Service {
	if cfg.HistorySize < 1 {
		cfg.HistorySize = 100
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Service{
		cfg:       cfg,
		asker:     asker,
		startedAt: time.Now(),
	}
}

// Handler returns the request router.
func (s *Service) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		s.applyCORS(ctx)
		if ctx.IsOptions() {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		switch string(ctx.Path()) {
		case "/ask":
			s.handleAsk(ctx)
		case "/healthz":
			s.handleHealth(ctx)
		case "/v1/status":
			s.handleStatus(ctx)
		case "/v1/history":
			s.handleHistory(ctx)
		default:
			writeError(ctx, fasthttp.StatusNotFound, "not found")
		}
	}
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "ada",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       s.cfg.Timeout + 5*time.Second,
		MaxRequestBodySize: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(s.cfg.Addr); err != nil {
			errCh <- err
		}
	}()
	log.Printf("ada serve: listening on %s", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("ada http server: %w", err)
	}
}

func (s *Service) handleAsk(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()
	var req advisor.Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.finish(ctx, start, req.Mode, fasthttp.StatusBadRequest, "invalid request body: "+err.Error(), false)
		return
	}
	if err := req.Validate(); err != nil {
		s.finish(ctx, start, req.Mode, fasthttp.StatusBadRequest, err.Error(), false)
		return
	}

	askCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	resp, err := s.asker.Ask(askCtx, req)
	if err != nil {
		status := fasthttp.StatusBadGateway
		if errors.Is(err, advisor.ErrBadRequest) {
			status = fasthttp.StatusBadRequest
		}
		s.finish(ctx, start, req.Mode, status, err.Error(), false)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, advisor.Response{Response: resp.Response})
	s.finish(ctx, start, req.Mode, fasthttp.StatusOK, "", resp.Cached)
}

// finish writes the error body when msg is set, then records the exchange.
func (s *Service) finish(ctx *fasthttp.RequestCtx, start time.Time, mode string, status int, msg string, cached bool) {
	if msg != "" {
		writeError(ctx, status, msg)
	}

	elapsed := time.Since(start)
	outcome := "ok"
	if msg != "" {
		outcome = "error"
	}
	s.record(Exchange{
		At:         start,
		Mode:       mode,
		DurationMs: elapsed.Milliseconds(),
		Status:     status,
		Outcome:    outcome,
		Cached:     cached,
	}, msg)

	if msg != "" {
		log.Printf("ada serve: POST /ask mode=%q status=%d in %s: %s", mode, status, elapsed.Round(time.Millisecond), msg)
		return
	}
	log.Printf("ada serve: POST /ask mode=%q status=%d in %s cached=%v", mode, status, elapsed.Round(time.Millisecond), cached)
}

func (s *Service) record(ex Exchange, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	if ex.Cached {
		s.cacheHits++
	}
	if errMsg != "" {
		s.failures++
		s.lastError = errMsg
	}

	s.nextID++
	ex.ID = s.nextID
	s.history = append(s.history, ex)
	if len(s.history) > s.cfg.HistorySize {
		s.history = s.history[len(s.history)-s.cfg.HistorySize:]
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:    s.startedAt,
		Addr:         s.cfg.Addr,
		Backend:      s.cfg.Backend,
		Requests:     s.requests,
		Failures:     s.failures,
		CacheHits:    s.cacheHits,
		LastError:    s.lastError,
		HistoryCount: len(s.history),
	}
}

func (s *Service) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString("ok\n")
}

func (s *Service) handleStatus(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, s.snapshotStatus())
}

func (s *Service) handleHistory(ctx *fasthttp.RequestCtx) {
	s.mu.RLock()
	history := make([]Exchange, len(s.history))
	copy(history, s.history)
	s.mu.RUnlock()

	writeJSON(ctx, fasthttp.StatusOK, history)
}

func (s *Service) applyCORS(ctx *fasthttp.RequestCtx) {
	origin := string(ctx.Request.Header.Peek("Origin"))
	if origin == "" {
		return
	}
	listed := slices.Contains(s.cfg.AllowedOrigins, origin)
	if !listed && !slices.Contains(s.cfg.AllowedOrigins, "*") {
		return
	}
	h := &ctx.Response.Header
	h.Set("Access-Control-Allow-Origin", origin)
	// "*" admits any page, so only named origins may send credentials.
	if listed {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	h.Add("Vary", "Origin")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encoding response", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorBody{Error: message})
}
