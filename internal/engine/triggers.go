package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

const (
	BoosterDefaultTrigger = 90 * time.Minute
	BoosterArrivalOffset  = 30 * time.Minute
	BoosterWindowClose    = 150 * time.Minute
	BoosterHardStop       = 180 * time.Minute
	BoosterSnooze         = 10 * time.Minute

	ComeUpCheckInInterval = 15 * time.Minute
)

// MinutesSince returns whole minutes from from to to, never negative.
func MinutesSince(from, to time.Time) int {
	if from.IsZero() || !to.After(from) {
		return 0
	}
	return int(to.Sub(from) / time.Minute)
}

// BoosterTriggerMinutes is min(minutesSince(T0, Tf)+30, 90) after a
// fully-arrived report and 90 otherwise.
func BoosterTriggerMinutes(s domain.Session) int {
	floor := int(BoosterDefaultTrigger / time.Minute)
	if !s.CheckIn.HasIndicatedFullyArrived || s.CheckIn.FullyArrivedAt.IsZero() {
		return floor
	}
	minutes := MinutesSince(s.IngestedAt, s.CheckIn.FullyArrivedAt) + int(BoosterArrivalOffset/time.Minute)
	if minutes > floor {
		return floor
	}
	return minutes
}

func BoosterTriggerAt(s domain.Session) time.Time {
	if !s.Started() {
		return time.Time{}
	}
	return s.IngestedAt.Add(time.Duration(BoosterTriggerMinutes(s)) * time.Minute)
}

func BoosterWindowClosed(now time.Time, s domain.Session) bool {
	return s.Started() && !now.Before(s.IngestedAt.Add(BoosterWindowClose))
}

func BoosterHardStopped(now time.Time, s domain.Session) bool {
	return s.Started() && !now.Before(s.IngestedAt.Add(BoosterHardStop))
}

// BoosterSilentlyExpired reports a pending booster whose window closed
// without a prompt. It is suppressed, not transitioned.
func BoosterSilentlyExpired(now time.Time, s domain.Session) bool {
	return s.Booster.Status == domain.BoosterPending && BoosterWindowClosed(now, s)
}

// ShouldShowBooster reports whether the booster prompt belongs on screen. An
// unanswered prompt that is not visible, e.g. after a restart, is shown again.
func ShouldShowBooster(now time.Time, s domain.Session) bool {
	if !s.ConsiderBooster || !s.Started() || !s.Status.Running() {
		return false
	}
	if s.Booster.ModalVisible || BoosterHardStopped(now, s) {
		return false
	}

	switch s.Booster.Status {
	case domain.BoosterPending:
		return !now.Before(BoosterTriggerAt(s)) && !BoosterWindowClosed(now, s)
	case domain.BoosterSnoozed:
		return !now.Before(s.Booster.NextPromptAt)
	case domain.BoosterPrompted:
		return true
	default:
		return false
	}
}

// ComeUpCheckInDue reports whether a time-based come-up check-in should be
// raised: no fully-arrived report, no active module, and 15 minutes since
// the phase began or the last prompt or answer.
func ComeUpCheckInDue(now time.Time, s domain.Session) bool {
	if s.Status != domain.StatusActive || s.CurrentPhase != domain.PhaseComeUp {
		return false
	}
	if s.CheckIn.HasIndicatedFullyArrived || s.CheckIn.PromptVisible {
		return false
	}
	if _, ok := s.CurrentModule(); ok {
		return false
	}

	anchor := s.PhaseWindows[domain.PhaseComeUp].StartedAt
	if last := s.CheckIn.LastActivity(); last.After(anchor) {
		anchor = last
	}
	if anchor.IsZero() {
		return false
	}
	return !now.Before(anchor.Add(ComeUpCheckInInterval))
}

// FollowUpReady lists locked follow-up modules whose unlock time has passed.
func FollowUpReady(now time.Time, f domain.FollowUp) []domain.FollowUpModule {
	if !f.UnlockTimes.Set() {
		return nil
	}
	ready := make([]domain.FollowUpModule, 0, len(domain.FollowUpModules))
	for _, module := range domain.FollowUpModules {
		if f.StatusOf(module) != domain.FollowUpLocked {
			continue
		}
		if !now.Before(f.UnlockTimes.For(module)) {
			ready = append(ready, module)
		}
	}
	return ready
}

// Triggers is a snapshot of every predicate for one instant.
type Triggers struct {
	Now                    time.Time
	ShowBooster            bool
	BoosterTriggerAt       time.Time
	BoosterWindowClosed    bool
	BoosterHardStopped     bool
	BoosterSilentlyExpired bool
	CheckInDue             bool
	FollowUpReady          []domain.FollowUpModule
}

func Evaluate(now time.Time, s domain.Session) Triggers {
	return Triggers{
		Now:                    now,
		ShowBooster:            ShouldShowBooster(now, s),
		BoosterTriggerAt:       BoosterTriggerAt(s),
		BoosterWindowClosed:    BoosterWindowClosed(now, s),
		BoosterHardStopped:     BoosterHardStopped(now, s),
		BoosterSilentlyExpired: BoosterSilentlyExpired(now, s),
		CheckInDue:             ComeUpCheckInDue(now, s),
		FollowUpReady:          FollowUpReady(now, s.FollowUp),
	}
}

func tick(s *domain.Session, now time.Time) Outcome {
	out := checkFollowUpAvailability(s, now)
	if ShouldShowBooster(now, *s) {
		out.merge(promptBooster(s, now))
	}
	if ComeUpCheckInDue(now, *s) {
		raiseCheckIn(s, now, &out)
		out.notify("Come-up check-in", "How are you feeling? Let guide know once you have fully arrived.")
	}
	return out
}
