package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

// Apply reduces one event against state. The input is never modified; a
// rejected event returns the input unchanged.
func (e *Engine) Apply(state domain.Session, event Event, now time.Time) (domain.Session, Outcome) {
	next := state.Clone()

	var out Outcome
	switch ev := event.(type) {
	case StartIntake:
		out = startIntake(&next)
	case CompleteIntake:
		out = e.completeIntake(&next, ev.Responses)
	case StartSubstanceChecklist:
		out = startSubstanceChecklist(&next)
	case StartSession:
		out = startSession(&next, ev.IngestedAt, now)
	case TransitionToPeak:
		out = transitionPhase(&next, domain.PhaseComeUp, domain.PhasePeak, now)
	case TransitionToIntegration:
		out = transitionPhase(&next, domain.PhasePeak, domain.PhaseIntegration, now)
	case PauseSession:
		out = pauseSession(&next, now)
	case ResumeSession:
		out = resumeSession(&next, now)
	case CompleteSession:
		out = completeSession(&next, now)
	case ResetSession:
		next = domain.NewSession()
		out.signal(SignalSessionReset)
	case AddModule:
		out = e.addModule(&next, ev)
	case RemoveModule:
		out = removeModule(&next, ev.ID)
	case ReorderModule:
		out = reorderModule(&next, ev.ID, ev.NewOrder)
	case SwapModuleOrder:
		out = swapModuleOrder(&next, ev.A, ev.B)
	case StartModule:
		out = startModule(&next, ev.ID, now)
	case CompleteModule:
		out = finishModule(&next, ev.ID, domain.ModuleCompleted, now)
	case SkipModule:
		out = finishModule(&next, ev.ID, domain.ModuleSkipped, now)
	case EnterOpenSpace:
		out = enterOpenSpace(&next)
	case RecordCheckIn:
		out = recordCheckIn(&next, ev.Response, now)
	case PromptBooster:
		out = promptBooster(&next, now)
	case TakeBooster:
		out = resolveBooster(&next, domain.BoosterTaken, now)
	case SkipBooster:
		out = resolveBooster(&next, domain.BoosterSkipped, now)
	case SnoozeBooster:
		out = resolveBooster(&next, domain.BoosterSnoozed, now)
	case DismissBooster:
		out = resolveBooster(&next, domain.BoosterExpired, now)
	case CheckFollowUpAvailability:
		out = checkFollowUpAvailability(&next, now)
	case CompleteFollowUp:
		out = completeFollowUp(&next, ev.Module, now)
	case RecordCapture:
		out = e.recordCapture(&next, ev.Kind, ev.Text, now)
	case Tick:
		out = tick(&next, now)
	default:
		out = reject(domain.ErrInvalidTransition, "unknown event %T", event)
	}

	if out.Rejected != nil {
		return state, out
	}
	return next, out
}
