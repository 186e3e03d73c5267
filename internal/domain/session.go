package domain

import "time"

// Session is the singleton aggregate for one guided session.
type Session struct {
	Status       LifecycleStatus
	CurrentPhase Phase

	Intake            IntakeResponses
	IntakeCompleted   bool
	SafetyWarnings    []SafetyWarning
	TargetDuration    time.Duration
	ConsiderBooster   bool
	TimelineGenerated bool

	IngestedAt           time.Time
	ClosedAt             time.Time
	FinalDurationSeconds int64
	PhaseWindows         map[Phase]PhaseWindow

	Timeline   Timeline
	Booster    Booster
	CheckIn    ComeUpCheckIn
	FollowUp   FollowUp
	Captures   TransitionCaptures
	Suspension Suspension
}

func NewSession() Session {
	return Session{
		Status:       StatusNotStarted,
		PhaseWindows: map[Phase]PhaseWindow{},
		Booster:      NewBooster(),
		FollowUp:     NewFollowUp(),
		Captures:     TransitionCaptures{},
	}
}

// Clone returns a deep copy so reducers can work on it freely.
func (s Session) Clone() Session {
	out := s
	out.Intake = s.Intake.Clone()
	if s.SafetyWarnings != nil {
		out.SafetyWarnings = append([]SafetyWarning(nil), s.SafetyWarnings...)
	}
	out.PhaseWindows = make(map[Phase]PhaseWindow, len(s.PhaseWindows))
	for k, v := range s.PhaseWindows {
		out.PhaseWindows[k] = v
	}
	out.Timeline = s.Timeline.Clone()
	out.CheckIn = s.CheckIn.Clone()
	out.FollowUp = s.FollowUp.Clone()
	out.Captures = s.Captures.Clone()
	out.Suspension = s.Suspension.Clone()
	return out
}

// Started reports whether ingestion has been recorded.
func (s Session) Started() bool {
	return !s.IngestedAt.IsZero()
}

// SinceIngestion returns the time elapsed since ingestion, zero before start.
func (s Session) SinceIngestion(now time.Time) time.Duration {
	if !s.Started() || now.Before(s.IngestedAt) {
		return 0
	}
	return now.Sub(s.IngestedAt)
}

// CurrentModule is the active non-booster module of the current phase.
func (s Session) CurrentModule() (ModuleInstance, bool) {
	if !s.CurrentPhase.Scheduled() {
		return ModuleInstance{}, false
	}
	return s.Timeline.Active(s.CurrentPhase)
}

// NextModule is the next upcoming non-booster module of the current phase.
func (s Session) NextModule() (ModuleInstance, bool) {
	if !s.CurrentPhase.Scheduled() {
		return ModuleInstance{}, false
	}
	return s.Timeline.NextUpcoming(s.CurrentPhase)
}

// Suspend adds a reason to the suspension set.
func (s *Session) Suspend(reason SuspendReason, now time.Time) {
	s.Suspension = s.Suspension.With(reason, now)
}

// Unsuspend removes a reason. When the set empties the closed interval is
// folded into every active module.
func (s *Session) Unsuspend(reason SuspendReason, now time.Time) {
	since := s.Suspension.Since
	next, closed := s.Suspension.Without(reason)
	s.Suspension = next
	if !closed {
		return
	}
	for i := range s.Timeline.Modules {
		module := &s.Timeline.Modules[i]
		if module.Status != ModuleActive {
			continue
		}
		module.SuspendedFor += Suspension{Reasons: []SuspendReason{reason}, Since: since}.Overlap(module.StartedAt, now)
	}
}

// StripTransient drops on-screen state before a save. Open modal suspensions
// are closed at now.
func (s *Session) StripTransient(now time.Time) {
	for _, reason := range append([]SuspendReason(nil), s.Suspension.Reasons...) {
		if reason.Transient() {
			s.Unsuspend(reason, now)
		}
	}
	s.Booster.ModalVisible = false
	s.Booster.WindowClosed = false
	s.CheckIn.PromptVisible = false
	s.CheckIn.EndChoiceVisible = false
}
