package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

func startIntake(s *domain.Session) Outcome {
	switch s.Status {
	case domain.StatusNotStarted:
		s.Status = domain.StatusIntake
		return Outcome{}
	case domain.StatusIntake:
		return Outcome{}
	default:
		return invalid(s.Status, "start intake")
	}
}

func (e *Engine) completeIntake(s *domain.Session, responses domain.IntakeResponses) Outcome {
	if s.Status != domain.StatusIntake || s.IntakeCompleted {
		return invalid(s.Status, "complete intake")
	}

	s.Intake = responses.Clone()
	s.IntakeCompleted = true
	s.SafetyWarnings = responses.SafetyWarnings()
	s.TargetDuration = responses.TargetDuration()
	s.ConsiderBooster = responses.ConsiderBooster
	s.Status = domain.StatusPreSession

	var out Outcome
	if !s.TimelineGenerated {
		e.generateTimeline(s, &out)
		s.TimelineGenerated = true
	}
	return out
}

// generateTimeline fills the queue from the catalog template for the intake
// focus, falling back to the default template.
func (e *Engine) generateTimeline(s *domain.Session, out *Outcome) {
	if e.library == nil {
		return
	}
	template, ok := e.library.Template(s.Intake.Focus)
	if !ok {
		template, _ = e.library.Template("")
	}

	for _, phase := range domain.TimelinePhases {
		for _, id := range template.Phases[phase] {
			module, err := e.library.GetModuleByID(id)
			if err != nil || module.IsBooster || !module.AllowedIn(phase) {
				continue
			}
			instance := e.instantiate(module, phase)
			insertAt(&s.Timeline, instance, len(s.Timeline.InPhase(phase)))
			out.prefetch(module.ID)
		}
	}

	if !s.ConsiderBooster || s.Timeline.HasBooster() {
		return
	}
	booster, err := e.library.GetModuleByID(domain.BoosterLibraryID)
	if err != nil {
		return
	}
	insertAt(&s.Timeline, e.instantiate(booster, domain.PhasePeak), boosterOrder)
}

func startSubstanceChecklist(s *domain.Session) Outcome {
	switch s.Status {
	case domain.StatusPreSession:
		s.Status = domain.StatusSubstanceChecklist
		return Outcome{}
	case domain.StatusSubstanceChecklist:
		return Outcome{}
	default:
		return invalid(s.Status, "start the substance checklist")
	}
}

func startSession(s *domain.Session, ingestedAt, now time.Time) Outcome {
	if s.Status != domain.StatusPreSession && s.Status != domain.StatusSubstanceChecklist {
		return invalid(s.Status, "start the session")
	}
	if !hasRunnableModule(s.Timeline) {
		return reject(domain.ErrEmptyQueue, "add at least one module before starting")
	}

	if ingestedAt.IsZero() || ingestedAt.After(now) {
		ingestedAt = now
	}
	s.IngestedAt = ingestedAt
	s.Status = domain.StatusActive
	s.CurrentPhase = domain.PhaseComeUp
	s.PhaseWindows[domain.PhaseComeUp] = domain.PhaseWindow{StartedAt: now}
	s.Timeline.OpenSpace = false

	var out Outcome
	out.signal(SignalSessionStarted)
	return out
}

func hasRunnableModule(t domain.Timeline) bool {
	for _, module := range t.Modules {
		if !module.IsBoosterModule && !module.Status.Finished() {
			return true
		}
	}
	return false
}

func transitionPhase(s *domain.Session, from, to domain.Phase, now time.Time) Outcome {
	if s.Status != domain.StatusActive {
		return invalid(s.Status, "move to "+string(to))
	}
	if s.CurrentPhase != from {
		return reject(domain.ErrInvalidTransition, "cannot move to %s from %s", to, s.CurrentPhase)
	}

	closePhase(s, from, now)
	skipUnfinished(s, from, now)
	s.PhaseWindows[to] = domain.PhaseWindow{StartedAt: now}
	s.CurrentPhase = to
	s.Timeline.OpenSpace = false
	dismissCheckIn(s, now)

	var out Outcome
	if _, busy := s.Timeline.Active(to); busy {
		return out
	}
	if next, ok := s.Timeline.NextUpcoming(to); ok {
		activate(s, next.InstanceID, now, &out)
		return out
	}
	enterOpenSpaceInto(s, &out)
	return out
}

func closePhase(s *domain.Session, phase domain.Phase, now time.Time) {
	window := s.PhaseWindows[phase]
	if window.EndedAt.IsZero() {
		window.EndedAt = now
	}
	s.PhaseWindows[phase] = window
}

// skipUnfinished records the module still running in a closing phase as
// skipped. The booster placeholder is settled by the booster decision.
func skipUnfinished(s *domain.Session, phase domain.Phase, now time.Time) {
	for i := range s.Timeline.Modules {
		module := &s.Timeline.Modules[i]
		if module.Phase != phase || module.Status != domain.ModuleActive || module.IsBoosterModule {
			continue
		}
		module.SuspendedFor += s.Suspension.Overlap(module.StartedAt, now)
		module.Status = domain.ModuleSkipped
		module.CompletedAt = now
		s.Timeline.History = append(s.Timeline.History, domain.NewHistoryRecord(*module, now))
	}
}

func pauseSession(s *domain.Session, now time.Time) Outcome {
	switch s.Status {
	case domain.StatusActive:
		s.Status = domain.StatusPaused
		s.Suspend(domain.SuspendPaused, now)
		return Outcome{}
	case domain.StatusPaused:
		return Outcome{}
	default:
		return invalid(s.Status, "pause")
	}
}

func resumeSession(s *domain.Session, now time.Time) Outcome {
	switch s.Status {
	case domain.StatusPaused:
		s.Status = domain.StatusActive
		s.Unsuspend(domain.SuspendPaused, now)
		return Outcome{}
	case domain.StatusActive:
		return Outcome{}
	default:
		return invalid(s.Status, "resume")
	}
}

func completeSession(s *domain.Session, now time.Time) Outcome {
	if !s.Status.Running() {
		return invalid(s.Status, "complete the session")
	}

	for _, reason := range append([]domain.SuspendReason(nil), s.Suspension.Reasons...) {
		s.Unsuspend(reason, now)
	}
	if s.CurrentPhase.Scheduled() {
		closePhase(s, s.CurrentPhase, now)
		skipUnfinished(s, s.CurrentPhase, now)
	}
	dismissCheckIn(s, now)
	s.Booster.ModalVisible = false
	s.Booster.WindowClosed = false

	s.ClosedAt = now
	s.FinalDurationSeconds = int64(s.SinceIngestion(now) / time.Second)
	s.FollowUp = domain.NewFollowUp()
	s.FollowUp.UnlockTimes = domain.UnlockTimesFrom(now)
	s.PhaseWindows[domain.PhaseFollowUp] = domain.PhaseWindow{StartedAt: now}
	s.CurrentPhase = domain.PhaseFollowUp
	s.Timeline.OpenSpace = false
	s.Status = domain.StatusCompleted

	var out Outcome
	out.signal(SignalSessionCompleted)
	return out
}
