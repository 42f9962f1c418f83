package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/theirongolddev/ada/internal/llm"
	"github.com/theirongolddev/ada/internal/model"
)

// DefaultSystemPrompt frames every answer.
const DefaultSystemPrompt = "Answer concisely. Use GBP (£) and UK market context where prices are relevant."

// Completer produces a chat completion. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Cache stores answers by request key. *store.Cache satisfies it.
type Cache interface {
	GetAnswer(key string) (string, bool, error)
	PutAnswer(key, answer string) error
}

// Local answers questions in-process by prompting a chat model.
type Local struct {
	llm    Completer
	cache  Cache
	system string
}

// NewLocal creates an in-process advisor. cache may be nil; an empty system
// prompt uses DefaultSystemPrompt.
func NewLocal(c Completer, cache Cache, system string) *Local {
	if strings.TrimSpace(system) == "" {
		system = DefaultSystemPrompt
	}
	return &Local{llm: c, cache: cache, system: system}
}

// Ask implements Asker.
func (l *Local) Ask(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	key := l.cacheKey(req)
	if l.cache != nil {
		if answer, ok, err := l.cache.GetAnswer(key); err == nil && ok {
			return Response{Response: answer, Cached: true}, nil
		}
	}

	answer, err := l.llm.Complete(ctx, BuildMessages(l.system, req))
	if err != nil {
		if errors.Is(err, llm.ErrTransport) {
			return Response{}, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		return Response{}, fmt.Errorf("%w: %v", ErrServer, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Response{}, ErrEmptyAnswer
	}

	if l.cache != nil {
		// Best-effort; a cache write failure never fails the answer.
		_ = l.cache.PutAnswer(key, answer)
	}
	return Response{Response: answer}, nil
}

// BuildMessages renders the system and user turns for req.
func BuildMessages(system string, req Request) []llm.Message {
	var user strings.Builder
	fmt.Fprintf(&user, "Mode: %s\nQuestion: %s", req.Mode, req.Question)
	if req.Mode == model.ModePersonal.String() && req.PersonalData != nil {
		user.WriteString("\nPersonal Data: ")
		user.WriteString(FormatPersonalData(*req.PersonalData))
	}
	return []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user.String()},
	}
}

// FormatPersonalData renders the inputs as "name: value" pairs in form order.
func FormatPersonalData(in model.FinancialInputs) string {
	amount := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	pairs := []string{
		"income: " + amount(in.Income),
		"necessaryExpenditure: " + amount(in.NecessaryExpenditure),
		"monthlyInvestment: " + amount(in.MonthlyInvestment),
		"donation: " + amount(in.Donation),
		"monthlySavings: " + amount(in.MonthlySavings),
		"horizonYears: " + strconv.Itoa(in.HorizonYears),
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// cacheKey hashes the system prompt together with the canonical request body.
func (l *Local) cacheKey(req Request) string {
	body, _ := json.Marshal(req)
	sum := sha256.Sum256(append([]byte(l.system+"\x00"), body...))
	return hex.EncodeToString(sum[:])
}
