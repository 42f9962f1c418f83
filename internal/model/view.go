package model

// Mode selects which advisory flow is active.
type Mode int

// Modes. ModeNone is only valid on the landing screen.
const (
	ModeNone Mode = iota
	ModeGeneral
	ModePersonal
)

// String returns the wire name used by the advisory endpoint.
func (m Mode) String() string {
	switch m {
	case ModeGeneral:
		return "general"
	case ModePersonal:
		return "personal"
	}
	return "none"
}

// ParseMode maps a wire name back to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "general":
		return ModeGeneral, true
	case "personal":
		return ModePersonal, true
	}
	return ModeNone, false
}

// Phase is the screen the session is showing.
type Phase int

// Phases.
const (
	PhaseLanding Phase = iota
	PhaseForm
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseForm:
		return "form"
	case PhaseResults:
		return "results"
	}
	return "landing"
}
