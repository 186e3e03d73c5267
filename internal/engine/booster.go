package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

func promptBooster(s *domain.Session, now time.Time) Outcome {
	if !ShouldShowBooster(now, *s) {
		return reject(domain.ErrBoosterNotDue, "status %s", s.Booster.Status)
	}

	fresh := s.Booster.Status != domain.BoosterPrompted
	s.Booster.Status = domain.BoosterPrompted
	if fresh {
		s.Booster.PromptedAt = now
	}
	s.Booster.ModalVisible = true
	s.Booster.WindowClosed = BoosterWindowClosed(now, *s)
	s.Suspend(domain.SuspendBoosterModal, now)

	var out Outcome
	if s.Booster.WindowClosed {
		out.signal(SignalBoosterWindowClosed)
	} else {
		out.signal(SignalBoosterPrompt)
	}
	if fresh {
		if s.Booster.WindowClosed {
			out.notify("Booster window closed", "The booster window has passed. Open guide to close the prompt.")
		} else {
			out.notify("Booster check", "It is time to decide about your booster.")
		}
	}
	return out
}

func resolveBooster(s *domain.Session, to domain.BoosterStatus, now time.Time) Outcome {
	if !s.Booster.Status.CanTransition(to) {
		return reject(domain.ErrInvalidTransition, "booster is %s", s.Booster.Status)
	}
	if to == domain.BoosterTaken && BoosterWindowClosed(now, *s) {
		return reject(domain.ErrBoosterWindowClosed, "dismiss the prompt instead")
	}

	s.Booster.Status = to
	switch to {
	case domain.BoosterTaken:
		s.Booster.TakenAt = now
	case domain.BoosterSnoozed:
		s.Booster.NextPromptAt = now.Add(BoosterSnooze)
		s.Booster.SnoozeCount++
	}
	s.Booster.ModalVisible = false
	s.Booster.WindowClosed = false
	s.Unsuspend(domain.SuspendBoosterModal, now)

	if to.Resolved() {
		settleBoosterPlaceholder(s, to, now)
	}
	return Outcome{}
}

// settleBoosterPlaceholder finishes the timeline marker once the decision is
// final.
func settleBoosterPlaceholder(s *domain.Session, decision domain.BoosterStatus, now time.Time) {
	for i := range s.Timeline.Modules {
		module := &s.Timeline.Modules[i]
		if !module.IsBoosterModule || module.Status.Finished() {
			continue
		}
		module.Status = domain.ModuleSkipped
		if decision == domain.BoosterTaken {
			module.Status = domain.ModuleCompleted
		}
		module.CompletedAt = now
		s.Timeline.History = append(s.Timeline.History, domain.NewHistoryRecord(*module, now))
	}
}
