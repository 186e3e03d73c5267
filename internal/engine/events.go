package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

// Event is an input to Apply. Each concrete type maps to one reducer.
type Event interface {
	Name() string
}

type StartIntake struct{}

type CompleteIntake struct {
	Responses domain.IntakeResponses
}

type StartSubstanceChecklist struct{}

// StartSession uses now when IngestedAt is zero.
type StartSession struct {
	IngestedAt time.Time
}

type TransitionToPeak struct{}

type TransitionToIntegration struct{}

type PauseSession struct{}

type ResumeSession struct{}

type CompleteSession struct{}

type ResetSession struct{}

type AddModule struct {
	LibraryID string
	Phase     domain.Phase
	// Position is nil to append, or to use order 1 for the booster.
	Position *int
}

type RemoveModule struct {
	ID domain.InstanceID
}

type ReorderModule struct {
	ID       domain.InstanceID
	NewOrder int
}

type SwapModuleOrder struct {
	A domain.InstanceID
	B domain.InstanceID
}

type StartModule struct {
	ID domain.InstanceID
}

type CompleteModule struct {
	ID domain.InstanceID
}

type SkipModule struct {
	ID domain.InstanceID
}

type EnterOpenSpace struct{}

type RecordCheckIn struct {
	Response domain.CheckInResponse
}

type PromptBooster struct{}

type TakeBooster struct{}

type SkipBooster struct{}

type SnoozeBooster struct{}

// DismissBooster closes a prompt after the window has closed.
type DismissBooster struct{}

type CheckFollowUpAvailability struct{}

type CompleteFollowUp struct {
	Module domain.FollowUpModule
}

type RecordCapture struct {
	Kind domain.TransitionKind
	Text string
}

// Tick evaluates every time predicate and applies the promotions that are
// due.
type Tick struct{}

func (StartIntake) Name() string               { return "start-intake" }
func (CompleteIntake) Name() string            { return "complete-intake" }
func (StartSubstanceChecklist) Name() string   { return "start-substance-checklist" }
func (StartSession) Name() string              { return "start-session" }
func (TransitionToPeak) Name() string          { return "transition-to-peak" }
func (TransitionToIntegration) Name() string   { return "transition-to-integration" }
func (PauseSession) Name() string              { return "pause-session" }
func (ResumeSession) Name() string             { return "resume-session" }
func (CompleteSession) Name() string           { return "complete-session" }
func (ResetSession) Name() string              { return "reset-session" }
func (AddModule) Name() string                 { return "add-module" }
func (RemoveModule) Name() string              { return "remove-module" }
func (ReorderModule) Name() string             { return "reorder-module" }
func (SwapModuleOrder) Name() string           { return "swap-module-order" }
func (StartModule) Name() string               { return "start-module" }
func (CompleteModule) Name() string            { return "complete-module" }
func (SkipModule) Name() string                { return "skip-module" }
func (EnterOpenSpace) Name() string            { return "enter-open-space" }
func (RecordCheckIn) Name() string             { return "record-check-in" }
func (PromptBooster) Name() string             { return "prompt-booster" }
func (TakeBooster) Name() string               { return "take-booster" }
func (SkipBooster) Name() string               { return "skip-booster" }
func (SnoozeBooster) Name() string             { return "snooze-booster" }
func (DismissBooster) Name() string            { return "dismiss-booster" }
func (CheckFollowUpAvailability) Name() string { return "check-follow-up-availability" }
func (CompleteFollowUp) Name() string          { return "complete-follow-up" }
func (RecordCapture) Name() string             { return "record-capture" }
func (Tick) Name() string                      { return "tick" }
