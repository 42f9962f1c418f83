// Package session implements the advisor's view state machine: which screen
// is showing, which mode is active, and what the last submission produced.
//
// State performs no I/O. Submit hands back a Ticket describing the advisory
// request; the caller performs the call and reports the outcome through
// Resolve. A ticket carries the generation it was issued in, so responses
// that arrive after a mode switch or a newer submission are discarded.
package session

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/ada/internal/advisor"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/pipeline"
)

var (
	// ErrWrongPhase is returned when an operation is not valid on the current screen.
	ErrWrongPhase = errors.New("session: operation not valid in current phase")
	// ErrInvalidMode is returned when selecting a mode other than general or personal.
	ErrInvalidMode = errors.New("session: invalid mode")
	// ErrUnknownField is returned for edits to a field the form does not have.
	ErrUnknownField = errors.New("session: unknown field")
	// ErrSubmitInFlight is returned when a submission is already waiting for an answer.
	ErrSubmitInFlight = errors.New("session: a request is already in flight")
)

// Ticket identifies one outstanding advisory request.
type Ticket struct {
	Generation uint64
	Request    advisor.Request
}

// View is a read-only snapshot handed to renderers.
type View struct {
	Mode       model.Mode
	Phase      model.Phase
	Query      string
	Fields     model.RawInputs
	Inputs     model.FinancialInputs
	Answer     string
	Projection []model.ProjectionPoint
	Breakdown  []model.BreakdownCategory
	Terminal   int64
	Notice     string
	Pending    bool
}

// State is the mutable session. The zero value is not ready; use New.
type State struct {
	mode  model.Mode
	phase model.Phase

	query  string
	fields model.RawInputs

	// submitted is the coerced snapshot of the last submission.
	submitted  model.FinancialInputs
	answer     string
	projection []model.ProjectionPoint
	breakdown  []model.BreakdownCategory
	terminal   int64
	notice     string

	generation uint64
	pending    bool
}

// New returns a session on the landing screen with no mode selected.
func New() *State {
	return &State{mode: model.ModeNone, phase: model.PhaseLanding}
}

// Mode returns the active mode.
func (s *State) Mode() model.Mode { return s.mode }

// Phase returns the current screen.
func (s *State) Phase() model.Phase { return s.phase }

// Pending reports whether a submission is waiting for its answer.
func (s *State) Pending() bool { return s.pending }

// SelectMode switches to m from any screen and lands on a clean form.
// Selecting the active mode again still clears everything.
func (s *State) SelectMode(m model.Mode) error {
	if m != model.ModeGeneral && m != model.ModePersonal {
		return fmt.Errorf("%w: %d", ErrInvalidMode, m)
	}
	s.mode = m
	s.phase = model.PhaseForm
	s.query = ""
	s.fields = model.RawInputs{}
	s.submitted = model.FinancialInputs{}
	s.clearResults()
	s.answer = ""
	s.notice = ""
	s.invalidate()
	return nil
}

// UpdateField stores raw text for a form field without interpreting it.
func (s *State) UpdateField(f model.Field, raw string) error {
	if s.phase != model.PhaseForm {
		return ErrWrongPhase
	}
	if f == model.FieldQuery {
		s.query = raw
		return nil
	}
	if s.mode != model.ModePersonal {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if !s.fields.Set(f, raw) {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// Submit starts an advisory request for the current form. Personal inputs
// are coerced here, once. Only one request may be outstanding.
func (s *State) Submit() (Ticket, error) {
	if s.phase != model.PhaseForm {
		return Ticket{}, ErrWrongPhase
	}
	if s.pending {
		return Ticket{}, ErrSubmitInFlight
	}

	req := advisor.Request{Mode: s.mode.String(), Question: s.query}
	if s.mode == model.ModePersonal {
		s.submitted = pipeline.Coerce(s.fields)
		in := s.submitted
		req.PersonalData = &in
	}

	s.generation++
	s.pending = true
	s.notice = ""
	return Ticket{Generation: s.generation, Request: req}, nil
}

// Resolve applies the outcome of the request identified by t. It reports
// false, changing nothing, when t is stale.
func (s *State) Resolve(t Ticket, answer string, err error) bool {
	if !s.pending || t.Generation != s.generation {
		return false
	}
	s.pending = false

	if err == nil && answer == "" && s.mode == model.ModeGeneral {
		err = advisor.ErrEmptyAnswer
	}
	if err != nil {
		s.notice = noticeFor(err)
		return true
	}

	s.answer = answer
	switch s.mode {
	case model.ModeGeneral:
		s.clearResults()
		s.phase = model.PhaseResults
	case model.ModePersonal:
		in := s.submitted
		if !pipeline.Chartworthy(in) {
			s.clearResults()
			return true
		}
		s.projection = pipeline.Project(in.MonthlyInvestment, in.HorizonYears)
		s.terminal = pipeline.TerminalValue(in.MonthlyInvestment, in.HorizonYears)
		s.breakdown = pipeline.BuildBreakdown(in, s.terminal)
		s.phase = model.PhaseResults
	}
	return true
}

// BackToForm leaves the results screen keeping mode, fields and the answer.
func (s *State) BackToForm() error {
	if s.phase != model.PhaseResults {
		return ErrWrongPhase
	}
	s.phase = model.PhaseForm
	s.clearResults()
	return nil
}

// Abandon drops any outstanding request so its answer is ignored.
func (s *State) Abandon() {
	s.invalidate()
}

// Snapshot copies the state for rendering.
func (s *State) Snapshot() View {
	v := View{
		Mode:     s.mode,
		Phase:    s.phase,
		Query:    s.query,
		Fields:   s.fields,
		Inputs:   s.submitted,
		Answer:   s.answer,
		Terminal: s.terminal,
		Notice:   s.notice,
		Pending:  s.pending,
	}
	if len(s.projection) > 0 {
		v.Projection = append([]model.ProjectionPoint(nil), s.projection...)
	}
	if len(s.breakdown) > 0 {
		v.Breakdown = append([]model.BreakdownCategory(nil), s.breakdown...)
	}
	return v
}

func (s *State) clearResults() {
	s.projection = nil
	s.breakdown = nil
	s.terminal = 0
}

func (s *State) invalidate() {
	s.generation++
	s.pending = false
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, advisor.ErrNetwork):
		return "Could not reach the advisor. Check your connection and try again."
	case errors.Is(err, advisor.ErrServer):
		return "The advisor could not answer right now: " + err.Error()
	}
	return "Request failed: " + err.Error()
}
