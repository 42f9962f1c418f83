// Package tui provides the interactive Bubble Tea front end for ada.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ada/internal/advisor"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/report"
	"github.com/theirongolddev/ada/internal/session"
	"github.com/theirongolddev/ada/internal/tui/components"
	"github.com/theirongolddev/ada/internal/tui/theme"
)

// AnswerMsg carries the outcome of one advisory call back to the UI.
type AnswerMsg struct {
	Ticket session.Ticket
	Answer string
	Err    error
}

// ExportedMsg is sent when a PDF export finishes.
type ExportedMsg struct {
	Path string
	Err  error
}

// Options configures a new App.
type Options struct {
	Asker     advisor.Asker
	Timeout   time.Duration
	ExportDir string
	Backend   string // shown in the status bar
	Endpoint  string // prefills the setup wizard
	FirstRun  bool
}

// App is the root Bubble Tea model.
type App struct {
	state     *session.State
	asker     advisor.Asker
	timeout   time.Duration
	exportDir string
	backend   string

	// Form inputs, indexed like formFields.
	inputs []textinput.Model
	focus  int

	spinner    spinner.Model
	answerView viewport.Model

	// UI state
	width    int
	height   int
	showHelp bool
	status   string

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140
	minContentHeight = 5

	answerHeightPersonal = 6
)

// formFields is the tab order of every input the form can show.
var formFields = append([]model.Field{model.FieldQuery}, model.PersonalFields...)

// NewApp creates a new TUI app model on the landing screen.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	a := App{
		state:      session.New(),
		asker:      opts.Asker,
		timeout:    timeout,
		exportDir:  opts.ExportDir,
		backend:    opts.Backend,
		inputs:     newInputs(),
		spinner:    sp,
		answerView: viewport.New(0, 0),
		needSetup:  opts.FirstRun,
		setupVals:  &SetupValues{Endpoint: opts.Endpoint, Theme: theme.Active.Name},
	}
	if a.needSetup {
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.Init()
	}
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.needSetup && a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.resizeInputs()
		a.refreshAnswerView()
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch a.state.Phase() {
		case model.PhaseLanding:
			return a.updateLanding(key)
		case model.PhaseForm:
			return a.updateForm(msg)
		case model.PhaseResults:
			return a.updateResults(msg)
		}
		return a, nil

	case AnswerMsg:
		if !a.state.Resolve(msg.Ticket, msg.Answer, msg.Err) {
			// Stale: the user switched mode while the call was in flight.
			return a, nil
		}
		a.status = ""
		a.refreshAnswerView()
		a.answerView.GotoTop()
		return a, nil

	case ExportedMsg:
		if msg.Err != nil {
			a.status = "Export failed: " + msg.Err.Error()
		} else {
			a.status = "Saved " + msg.Path
		}
		return a, nil

	case spinner.TickMsg:
		if a.state.Pending() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Cursor blink for the focused input
	if a.state.Phase() == model.PhaseForm {
		var cmd tea.Cmd
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateLanding(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	}
	if len(key) == 1 {
		if m := components.ModeByKey(rune(key[0])); m != model.ModeNone {
			return a.selectMode(m)
		}
	}
	return a, nil
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+g":
		return a.selectMode(model.ModeGeneral)
	case "ctrl+p":
		return a.selectMode(model.ModePersonal)
	case "tab", "down":
		cmd := a.moveFocus(1)
		return a, cmd
	case "shift+tab", "up":
		cmd := a.moveFocus(-1)
		return a, cmd
	case "enter":
		return a.submit()
	case "esc":
		if a.state.Pending() {
			a.state.Abandon()
			a.status = "Request cancelled"
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	// The form never rejects text; numbers are read only on submit.
	_ = a.state.UpdateField(formFields[a.focus], a.inputs[a.focus].Value())
	return a, cmd
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "b", "esc":
		if err := a.state.BackToForm(); err != nil {
			return a, nil
		}
		a.status = ""
		cmd := a.inputs[a.focus].Focus()
		return a, cmd
	case "e":
		a.status = "Exporting..."
		return a, exportCmd(a.exportDir, a.reportFor(a.state.Snapshot()))
	}
	if len(key) == 1 {
		if m := components.ModeByKey(rune(key[0])); m != model.ModeNone {
			return a.selectMode(m)
		}
	}

	var cmd tea.Cmd
	a.answerView, cmd = a.answerView.Update(msg)
	return a, cmd
}

func (a App) selectMode(m model.Mode) (tea.Model, tea.Cmd) {
	if err := a.state.SelectMode(m); err != nil {
		return a, nil
	}
	a.inputs = newInputs()
	a.resizeInputs()
	a.focus = 0
	a.status = ""
	a.answerView.SetContent("")
	cmd := a.inputs[0].Focus()
	return a, cmd
}

func (a App) submit() (tea.Model, tea.Cmd) {
	ticket, err := a.state.Submit()
	if err != nil {
		if errors.Is(err, session.ErrSubmitInFlight) {
			a.status = "Still waiting for the advisor"
		}
		return a, nil
	}
	a.status = ""
	return a, tea.Batch(askCmd(a.asker, ticket, a.timeout), a.spinner.Tick)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		if err := SaveSetup(*a.setupVals); err != nil {
			a.status = "Could not save config: " + err.Error()
		} else {
			a.status = "Saved setup. Restart to use a new endpoint."
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  ada needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: logo + mode selector
	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)
	headerStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)
	header := headerStyle.Render(" " + logoStyle.Render("◈ ada") + "  " + components.RenderModeBar(a.state.Mode()))

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.hints(), a.statusText())

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Screen content
	var content string
	switch a.state.Phase() {
	case model.PhaseLanding:
		content = a.renderLanding(cw, contentH)
	case model.PhaseForm:
		content = a.renderForm(cw)
	case model.PhaseResults:
		content = a.renderResults(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch a.state.Phase() {
	case model.PhaseForm:
		return "[enter]ask  [tab]next field  [^g]general  [^p]personal  [^c]quit"
	case model.PhaseResults:
		return "[b]ack  [e]xport pdf  [j/k]scroll  [g/p]mode  [?]help  [q]uit"
	}
	return "[g]eneral  [p]ersonal  [?]help  [q]uit"
}

func (a App) statusText() string {
	if a.status != "" {
		return a.status
	}
	return a.backend
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"g p", "General / Personal mode"},
		{"^g ^p", "Switch mode from the form"},
		{"Tab", "Next field"},
		{"Enter", "Ask the advisor"},
		{"Esc", "Cancel request / Back"},
		{"b", "Back to the form"},
		{"e", "Export results to PDF"},
		{"j k", "Scroll the answer"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

// askCmd performs the advisory call off the UI goroutine.
func askCmd(asker advisor.Asker, t session.Ticket, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := asker.Ask(ctx, t.Request)
		return AnswerMsg{Ticket: t, Answer: resp.Response, Err: err}
	}
}

func exportCmd(dir string, r report.Report) tea.Cmd {
	return func() tea.Msg {
		if dir == "" {
			dir = "."
		}
		path := filepath.Join(dir, "ada-report-"+r.GeneratedAt.Format("20060102-150405")+".pdf")
		f, err := os.Create(path) //nolint:gosec // path is built from the export dir
		if err != nil {
			return ExportedMsg{Err: err}
		}
		if err := report.WritePDF(f, r); err != nil {
			_ = f.Close()
			return ExportedMsg{Err: err}
		}
		return ExportedMsg{Path: path, Err: f.Close()}
	}
}

func (a App) reportFor(v session.View) report.Report {
	return report.Report{
		Question:    v.Query,
		Answer:      v.Answer,
		Inputs:      v.Inputs,
		Projection:  v.Projection,
		Breakdown:   v.Breakdown,
		Terminal:    v.Terminal,
		GeneratedAt: time.Now(),
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
