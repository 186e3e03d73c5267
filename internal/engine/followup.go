package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

func checkFollowUpAvailability(s *domain.Session, now time.Time) Outcome {
	var out Outcome
	for _, module := range FollowUpReady(now, s.FollowUp) {
		s.FollowUp.Statuses[module] = domain.FollowUpAvailable
		out.Unlocked = append(out.Unlocked, module)
		out.signal(SignalFollowUpUnlocked)
		out.notify("Follow-up available", "Your "+string(module)+" follow-up is ready.")
	}
	return out
}

func completeFollowUp(s *domain.Session, module domain.FollowUpModule, now time.Time) Outcome {
	if _, err := domain.ParseFollowUpModule(string(module)); err != nil {
		return Outcome{Rejected: err}
	}

	out := checkFollowUpAvailability(s, now)
	switch s.FollowUp.StatusOf(module) {
	case domain.FollowUpCompleted:
		return out
	case domain.FollowUpLocked:
		unlock := s.FollowUp.UnlockTimes.For(module)
		if unlock.IsZero() {
			return reject(domain.ErrFollowUpLocked, "%s unlocks after the session closes", module)
		}
		return reject(domain.ErrFollowUpLocked, "%s unlocks at %s", module, unlock.Format(time.RFC3339))
	}

	s.FollowUp.Statuses[module] = domain.FollowUpCompleted
	s.FollowUp.CompletedAt[module] = now
	return out
}
