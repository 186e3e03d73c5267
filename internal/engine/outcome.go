package engine

import (
	"fmt"

	"github.com/bnema/guide-cli/internal/domain"
)

// Signal is a UI-facing cue raised by a reducer.
type Signal string

const (
	SignalSessionStarted         Signal = "session-started"
	SignalSessionCompleted       Signal = "session-completed"
	SignalSessionReset           Signal = "session-reset"
	SignalModuleStarted          Signal = "module-started"
	SignalCheckInPrompt          Signal = "check-in-prompt"
	SignalEndOfPhaseChoice       Signal = "end-of-phase-choice"
	SignalOpenSpace              Signal = "open-space"
	SignalPeakExitCheckIn        Signal = "peak-exit-check-in"
	SignalIntegrationExitCheckIn Signal = "integration-exit-check-in"
	SignalBoosterPrompt          Signal = "booster-prompt"
	SignalBoosterWindowClosed    Signal = "booster-window-closed"
	SignalFollowUpUnlocked       Signal = "follow-up-unlocked"
)

// Effects are best-effort side effects for the service shell to run after
// the new state is saved.
type Effects struct {
	Prefetch []string
	Journal  []domain.JournalEntry
	Notify   []domain.Notification
}

func (e Effects) Empty() bool {
	return len(e.Prefetch) == 0 && len(e.Journal) == 0 && len(e.Notify) == 0
}

// Outcome is what a reducer reports besides the next state. A non-nil
// Rejected means the state was left unchanged.
type Outcome struct {
	Signals  []Signal
	Warning  string
	Rejected error
	Module   *domain.ModuleInstance
	Unlocked []domain.FollowUpModule
	Effects  Effects
}

func (o Outcome) Has(signal Signal) bool {
	for _, s := range o.Signals {
		if s == signal {
			return true
		}
	}
	return false
}

func (o *Outcome) signal(signal Signal) {
	if o.Has(signal) {
		return
	}
	o.Signals = append(o.Signals, signal)
}

func (o *Outcome) prefetch(libraryID string) {
	for _, id := range o.Effects.Prefetch {
		if id == libraryID {
			return
		}
	}
	o.Effects.Prefetch = append(o.Effects.Prefetch, libraryID)
}

func (o *Outcome) notify(title, body string) {
	o.Effects.Notify = append(o.Effects.Notify, domain.Notification{Title: title, Body: body})
}

func (o *Outcome) merge(other Outcome) {
	for _, s := range other.Signals {
		o.signal(s)
	}
	if o.Warning == "" {
		o.Warning = other.Warning
	}
	if other.Module != nil {
		o.Module = other.Module
	}
	o.Unlocked = append(o.Unlocked, other.Unlocked...)
	for _, id := range other.Effects.Prefetch {
		o.prefetch(id)
	}
	o.Effects.Journal = append(o.Effects.Journal, other.Effects.Journal...)
	o.Effects.Notify = append(o.Effects.Notify, other.Effects.Notify...)
}

func reject(code error, format string, args ...any) Outcome {
	return Outcome{Rejected: domain.Reject(code, fmt.Sprintf(format, args...))}
}

func invalid(status domain.LifecycleStatus, action string) Outcome {
	return reject(domain.ErrInvalidTransition, "cannot %s while %s", action, status)
}

// AddModuleResult is the structured answer to an AddModule event.
type AddModuleResult struct {
	Allowed  bool
	Instance domain.ModuleInstance
	Warning  string
	Err      error
}

func (o Outcome) AddModuleResult() AddModuleResult {
	if o.Rejected != nil {
		return AddModuleResult{Err: o.Rejected}
	}
	result := AddModuleResult{Allowed: true, Warning: o.Warning}
	if o.Module != nil {
		result.Instance = *o.Module
	}
	return result
}
