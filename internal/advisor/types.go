// Package advisor defines the advisory call: the request/response exchange
// between the session and whatever answers financial questions, plus an
// HTTP client and an in-process implementation backed by a chat model.
package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/ada/internal/model"
)

var (
	// ErrNetwork indicates the advisor could not be reached.
	ErrNetwork = errors.New("advisor: network error")
	// ErrServer indicates the advisor was reached but did not produce an answer.
	ErrServer = errors.New("advisor: server error")
	// ErrEmptyAnswer indicates a successful exchange with no answer text.
	ErrEmptyAnswer = fmt.Errorf("%w: empty answer", ErrServer)
	// ErrBadRequest indicates a request the advisor refuses to process.
	ErrBadRequest = errors.New("advisor: bad request")
)

// Request is the body of an advisory call.
// PersonalData is nil for general questions.
type Request struct {
	Mode         string                 `json:"mode"`
	Question     string                 `json:"question"`
	PersonalData *model.FinancialInputs `json:"personalData"`
}

// Response is the advisor's answer. Response is opaque formatted text.
type Response struct {
	Response string `json:"response"`
	Cached   bool   `json:"-"`
}

// errorBody is the JSON shape of a failed /ask call.
type errorBody struct {
	Error string `json:"error"`
}

// Asker performs one advisory exchange.
type Asker interface {
	Ask(ctx context.Context, req Request) (Response, error)
}

// Validate checks that the request names a known mode.
func (r Request) Validate() error {
	if _, ok := model.ParseMode(r.Mode); !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrBadRequest, r.Mode)
	}
	return nil
}
