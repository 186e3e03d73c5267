package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

func recordCheckIn(s *domain.Session, response domain.CheckInResponse, now time.Time) Outcome {
	if s.Status != domain.StatusActive || s.CurrentPhase != domain.PhaseComeUp {
		return reject(domain.ErrInvalidTransition, "check-ins are recorded during an active come-up, not %s/%s", s.Status, s.CurrentPhase)
	}
	if _, err := domain.ParseCheckInResponse(string(response)); err != nil {
		return Outcome{Rejected: err}
	}

	s.CheckIn.Entries = append(s.CheckIn.Entries, domain.CheckInEntry{
		Response:              response,
		Timestamp:             now,
		MinutesSinceIngestion: MinutesSince(s.IngestedAt, now),
	})
	dismissCheckIn(s, now)

	var out Outcome
	if response == domain.CheckInFullyArrived && !s.CheckIn.HasIndicatedFullyArrived {
		s.CheckIn.HasIndicatedFullyArrived = true
		s.CheckIn.FullyArrivedAt = now
		s.CheckIn.EndChoiceVisible = true
		out.signal(SignalEndOfPhaseChoice)
	}
	return out
}

func raiseCheckIn(s *domain.Session, now time.Time, out *Outcome) {
	s.CheckIn.PromptVisible = true
	s.CheckIn.PromptCount++
	s.CheckIn.LastPromptedAt = now
	s.Suspend(domain.SuspendCheckInModal, now)
	out.signal(SignalCheckInPrompt)
}

func dismissCheckIn(s *domain.Session, now time.Time) {
	s.CheckIn.PromptVisible = false
	s.CheckIn.EndChoiceVisible = false
	s.Unsuspend(domain.SuspendCheckInModal, now)
}
