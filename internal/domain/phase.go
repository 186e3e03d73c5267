package domain

import (
	"fmt"
	"strings"
	"time"
)

type LifecycleStatus string

const (
	StatusNotStarted         LifecycleStatus = "not-started"
	StatusIntake             LifecycleStatus = "intake"
	StatusPreSession         LifecycleStatus = "pre-session"
	StatusSubstanceChecklist LifecycleStatus = "substance-checklist"
	StatusActive             LifecycleStatus = "active"
	StatusPaused             LifecycleStatus = "paused"
	StatusCompleted          LifecycleStatus = "completed"
)

// Running reports whether the session has been started and not yet closed.
func (s LifecycleStatus) Running() bool {
	return s == StatusActive || s == StatusPaused
}

type Phase string

const (
	PhaseComeUp      Phase = "come-up"
	PhasePeak        Phase = "peak"
	PhaseIntegration Phase = "integration"
	PhaseFollowUp    Phase = "follow-up"
)

// TimelinePhases are the phases that carry a module queue, in session order.
var TimelinePhases = []Phase{PhaseComeUp, PhasePeak, PhaseIntegration}

func ParsePhase(raw string) (Phase, error) {
	phase := Phase(strings.ToLower(strings.TrimSpace(raw)))
	switch phase {
	case PhaseComeUp, PhasePeak, PhaseIntegration, PhaseFollowUp:
		return phase, nil
	case "comeup":
		return PhaseComeUp, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidPhase, raw)
	}
}

// Scheduled reports whether modules can be placed in the phase.
func (p Phase) Scheduled() bool {
	switch p {
	case PhaseComeUp, PhasePeak, PhaseIntegration:
		return true
	default:
		return false
	}
}

func (p Phase) rank() int {
	switch p {
	case PhaseComeUp:
		return 1
	case PhasePeak:
		return 2
	case PhaseIntegration:
		return 3
	case PhaseFollowUp:
		return 4
	default:
		return 0
	}
}

// Before reports whether p comes strictly earlier than other in a session.
func (p Phase) Before(other Phase) bool {
	return p.rank() < other.rank()
}

// PhaseWindow records when a phase was entered and left.
type PhaseWindow struct {
	StartedAt time.Time
	EndedAt   time.Time
}

func (w PhaseWindow) Open() bool {
	return !w.StartedAt.IsZero() && w.EndedAt.IsZero()
}
