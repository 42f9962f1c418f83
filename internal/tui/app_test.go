package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/ada/internal/advisor"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/pipeline"
	"github.com/theirongolddev/ada/internal/session"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

type fakeAsker struct {
	answer string
	err    error
	got    []advisor.Request
}

func (f *fakeAsker) Ask(_ context.Context, req advisor.Request) (advisor.Response, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return advisor.Response{}, f.err
	}
	return advisor.Response{Response: f.answer}, nil
}

func newTestApp(asker advisor.Asker) App {
	a := NewApp(Options{Asker: asker, Timeout: time.Second, Backend: "test"})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return m.(App)
}

func send(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// answerFrom runs cmd, descending into batches, and returns the first AnswerMsg.
func answerFrom(t *testing.T, cmd tea.Cmd) AnswerMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case AnswerMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if ans, ok := c().(AnswerMsg); ok {
				return ans
			}
		}
	}
	t.Fatal("no AnswerMsg produced")
	return AnswerMsg{}
}

func TestLandingModeKeys(t *testing.T) {
	a := newTestApp(&fakeAsker{})
	if !strings.Contains(a.View(), "Press") {
		t.Error("landing view should prompt for a mode")
	}

	a, _ = send(a, runes("p"))
	if a.state.Mode() != model.ModePersonal || a.state.Phase() != model.PhaseForm {
		t.Fatalf("after 'p': %s/%s", a.state.Mode(), a.state.Phase())
	}

	// Unbound keys do nothing on landing.
	b := newTestApp(&fakeAsker{})
	b, _ = send(b, runes("x"))
	if b.state.Phase() != model.PhaseLanding {
		t.Errorf("phase = %s, want landing", b.state.Phase())
	}
}

func TestGeneralFlow(t *testing.T) {
	asker := &fakeAsker{answer: "Spend less than you earn."}
	a := newTestApp(asker)

	a, _ = send(a, runes("g"))
	a, _ = send(a, runes("How do I save?"))
	a, cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.state.Pending() {
		t.Fatal("submit should leave a request pending")
	}
	if !strings.Contains(a.View(), "Asking the advisor") {
		t.Error("form should show the pending indicator")
	}

	a, _ = send(a, answerFrom(t, cmd))
	if len(asker.got) != 1 {
		t.Fatalf("asker called %d times", len(asker.got))
	}
	if got := asker.got[0]; got.Mode != "general" || got.Question != "How do I save?" || got.PersonalData != nil {
		t.Errorf("request = %+v", got)
	}
	if a.state.Phase() != model.PhaseResults {
		t.Fatalf("phase = %s, want results", a.state.Phase())
	}
	if !strings.Contains(a.View(), "Spend less") {
		t.Error("results view should show the answer")
	}

	a, _ = send(a, runes("b"))
	if a.state.Phase() != model.PhaseForm {
		t.Errorf("after 'b' phase = %s", a.state.Phase())
	}
	if a.inputs[0].Value() != "How do I save?" {
		t.Errorf("query lost on back: %q", a.inputs[0].Value())
	}
}

func TestPersonalFlowShowsCharts(t *testing.T) {
	asker := &fakeAsker{answer: "Looks healthy."}
	a := newTestApp(asker)
	a, _ = send(a, runes("p"))

	values := []string{"Should I invest?", "2000", "1000", "200", "50", "300", "10"}
	for i, v := range values {
		a, _ = send(a, runes(v))
		if i < len(values)-1 {
			a, _ = send(a, tea.KeyMsg{Type: tea.KeyTab})
		}
	}
	a, cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = send(a, answerFrom(t, cmd))

	req := asker.got[0]
	if req.PersonalData == nil || req.PersonalData.Income != 2000 || req.PersonalData.HorizonYears != 10 {
		t.Fatalf("personal data = %+v", req.PersonalData)
	}
	if a.state.Phase() != model.PhaseResults {
		t.Fatalf("phase = %s, want results", a.state.Phase())
	}
	v := a.View()
	for _, want := range []string{"Projected Value", "Projected Growth", "Where the Money Goes", "Looks healthy."} {
		if !strings.Contains(v, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestProjectedValueNotesCappedHorizon(t *testing.T) {
	in := model.FinancialInputs{Income: 3000, MonthlyInvestment: 100, HorizonYears: 1050}
	v := session.View{
		Inputs:     in,
		Projection: pipeline.Project(in.MonthlyInvestment, in.HorizonYears),
		Terminal:   pipeline.TerminalValue(in.MonthlyInvestment, in.HorizonYears),
	}
	got := resultMetrics(v)[0].Note
	if got != "after 1000 years (capped from 1050)" {
		t.Fatalf("projected value note = %q", got)
	}

	in.HorizonYears = 20
	v.Inputs = in
	v.Projection = pipeline.Project(in.MonthlyInvestment, in.HorizonYears)
	if got := resultMetrics(v)[0].Note; got != "after 20 years" {
		t.Fatalf("projected value note = %q", got)
	}
}

func TestFailureKeepsForm(t *testing.T) {
	a := newTestApp(&fakeAsker{err: advisor.ErrNetwork})
	a, _ = send(a, runes("g"))
	a, _ = send(a, runes("hi"))
	a, cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = send(a, answerFrom(t, cmd))

	if a.state.Phase() != model.PhaseForm {
		t.Fatalf("phase = %s, want form", a.state.Phase())
	}
	if !strings.Contains(a.View(), "Could not reach the advisor") {
		t.Error("form should show the failure notice")
	}
}

func TestModeSwitchDropsInFlightAnswer(t *testing.T) {
	a := newTestApp(&fakeAsker{answer: "late"})
	a, _ = send(a, runes("g"))
	a, _ = send(a, runes("q1"))
	a, cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})

	a, _ = send(a, tea.KeyMsg{Type: tea.KeyCtrlP})
	a, _ = send(a, answerFrom(t, cmd))

	if a.state.Mode() != model.ModePersonal || a.state.Phase() != model.PhaseForm {
		t.Fatalf("state = %s/%s", a.state.Mode(), a.state.Phase())
	}
	if a.state.Snapshot().Answer != "" {
		t.Error("stale answer should be ignored")
	}
	if a.inputs[0].Value() != "" {
		t.Error("mode switch should clear the inputs")
	}
}

func TestSecondEnterWhilePending(t *testing.T) {
	asker := &fakeAsker{answer: "ok"}
	a := newTestApp(asker)
	a, _ = send(a, runes("g"))
	a, _ = send(a, tea.KeyMsg{Type: tea.KeyEnter})
	a, cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("second submit should not start another request")
	}
	if !strings.Contains(a.status, "Still waiting") {
		t.Errorf("status = %q", a.status)
	}
}

func TestFocusWrapsInGeneralMode(t *testing.T) {
	a := newTestApp(&fakeAsker{})
	a, _ = send(a, runes("g"))
	a, _ = send(a, tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != 0 {
		t.Errorf("focus = %d, want 0 (only the question is shown)", a.focus)
	}

	a, _ = send(a, runes("p"))
	if a.state.Mode() != model.ModeGeneral {
		t.Error("'p' in the form is text, not a mode switch")
	}
}

func TestTooNarrow(t *testing.T) {
	a := NewApp(Options{Asker: &fakeAsker{}})
	a, _ = send(a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("expected narrow terminal message")
	}
}

func TestHelpOverlay(t *testing.T) {
	a := newTestApp(&fakeAsker{})
	a, _ = send(a, runes("?"))
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help should render")
	}
	a, _ = send(a, runes("x"))
	if a.showHelp {
		t.Error("any key should close help")
	}
}

func TestPadAndTruncateHeight(t *testing.T) {
	if got := truncateHeight("a\nb\nc", 2); got != "a\nb" {
		t.Errorf("truncateHeight = %q", got)
	}
	if got := padHeight("a", 3); got != "a\n\n" {
		t.Errorf("padHeight = %q", got)
	}
}

func TestValidateEndpoint(t *testing.T) {
	for _, ok := range []string{"", "http://127.0.0.1:8000/ask", "https://ada.example/ask"} {
		if err := validateEndpoint(ok); err != nil {
			t.Errorf("validateEndpoint(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"ftp://x", "not a url", "http://"} {
		if err := validateEndpoint(bad); err == nil {
			t.Errorf("validateEndpoint(%q) = nil, want error", bad)
		}
	}
}
