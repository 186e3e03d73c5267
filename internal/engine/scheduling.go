package engine

import (
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

// boosterOrder is where the booster placeholder lands when no position is
// given.
const boosterOrder = 1

func (e *Engine) addModule(s *domain.Session, ev AddModule) Outcome {
	if !ev.Phase.Scheduled() {
		return reject(domain.ErrInvalidPhase, "%q", ev.Phase)
	}
	if s.Status == domain.StatusCompleted {
		return invalid(s.Status, "add modules")
	}
	if e.library == nil {
		return reject(domain.ErrModuleNotFound, "%s", ev.LibraryID)
	}

	module, err := e.library.GetModuleByID(ev.LibraryID)
	if err != nil {
		return reject(domain.ErrModuleNotFound, "%s", ev.LibraryID)
	}
	if module.IsBooster && s.Timeline.HasBooster() {
		return reject(domain.ErrDuplicateBooster, "%s", module.Title)
	}
	if !module.AllowedIn(ev.Phase) {
		return reject(domain.ErrPhaseNotAllowed, "%s during %s", module.Title, ev.Phase)
	}

	var out Outcome
	switch e.policy.TierFor(ev.Phase, module.Intensity) {
	case domain.TierBlocked:
		return reject(domain.ErrIntensityBlocked, "%s is %s intensity during %s", module.Title, module.Intensity, ev.Phase)
	case domain.TierWarning:
		out.Warning = module.Title + " is " + string(module.Intensity) + " intensity; consider something gentler during " + string(ev.Phase)
	}

	position := len(s.Timeline.InPhase(ev.Phase))
	if module.IsBooster {
		position = boosterOrder
	}
	if ev.Position != nil {
		position = *ev.Position
	}

	instance := insertAt(&s.Timeline, e.instantiate(module, ev.Phase), position)
	if module.IsBooster {
		s.ConsiderBooster = true
	}
	out.Module = &instance
	out.prefetch(module.ID)
	return out
}

// insertAt places m at position within its phase, clamped to the queue
// bounds, shifting later siblings by one.
func insertAt(t *domain.Timeline, m domain.ModuleInstance, position int) domain.ModuleInstance {
	size := len(t.InPhase(m.Phase))
	if position < 0 {
		position = 0
	}
	if position > size {
		position = size
	}
	for i := range t.Modules {
		if t.Modules[i].Phase == m.Phase && t.Modules[i].Order >= position {
			t.Modules[i].Order++
		}
	}
	m.Order = position
	t.Modules = append(t.Modules, m)
	return m
}

func removeModule(s *domain.Session, id domain.InstanceID) Outcome {
	idx := s.Timeline.Index(id)
	if idx < 0 {
		return reject(domain.ErrInstanceNotFound, "%s", id)
	}

	removed := s.Timeline.Modules[idx]
	s.Timeline.Modules = append(s.Timeline.Modules[:idx], s.Timeline.Modules[idx+1:]...)
	s.Timeline.Reindex(removed.Phase)
	if removed.IsBoosterModule {
		s.ConsiderBooster = false
	}
	return Outcome{Module: &removed}
}

func reorderModule(s *domain.Session, id domain.InstanceID, newOrder int) Outcome {
	module, ok := s.Timeline.Find(id)
	if !ok {
		return reject(domain.ErrInstanceNotFound, "%s", id)
	}

	siblings := s.Timeline.InPhase(module.Phase)
	ordered := make([]domain.InstanceID, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.InstanceID != id {
			ordered = append(ordered, sibling.InstanceID)
		}
	}
	if newOrder < 0 {
		newOrder = 0
	}
	if newOrder > len(ordered) {
		newOrder = len(ordered)
	}
	ordered = append(ordered[:newOrder], append([]domain.InstanceID{id}, ordered[newOrder:]...)...)

	for order, instanceID := range ordered {
		s.Timeline.Modules[s.Timeline.Index(instanceID)].Order = order
	}
	moved, _ := s.Timeline.Find(id)
	return Outcome{Module: &moved}
}

func swapModuleOrder(s *domain.Session, a, b domain.InstanceID) Outcome {
	ia, ib := s.Timeline.Index(a), s.Timeline.Index(b)
	if ia < 0 {
		return reject(domain.ErrInstanceNotFound, "%s", a)
	}
	if ib < 0 {
		return reject(domain.ErrInstanceNotFound, "%s", b)
	}

	first, second := &s.Timeline.Modules[ia], &s.Timeline.Modules[ib]
	if first.Phase != second.Phase {
		return reject(domain.ErrNotAdjacent, "%s and %s are in different phases", a, b)
	}
	if diff := first.Order - second.Order; diff != 1 && diff != -1 {
		return reject(domain.ErrNotAdjacent, "orders %d and %d", first.Order, second.Order)
	}
	first.Order, second.Order = second.Order, first.Order
	return Outcome{}
}

func startModule(s *domain.Session, id domain.InstanceID, now time.Time) Outcome {
	module, ok := s.Timeline.Find(id)
	if !ok {
		return reject(domain.ErrInstanceNotFound, "%s", id)
	}
	if module.IsBoosterModule {
		return reject(domain.ErrInvalidTransition, "the booster placeholder is never started")
	}
	if module.Status == domain.ModuleActive {
		return Outcome{}
	}
	if module.Status.Finished() {
		return reject(domain.ErrModuleFinished, "%s is %s", id, module.Status)
	}
	if !s.Status.Running() || module.Phase != s.CurrentPhase {
		return reject(domain.ErrInvalidTransition, "cannot start a %s module while %s/%s", module.Phase, s.Status, s.CurrentPhase)
	}
	if active, busy := s.Timeline.Active(module.Phase); busy {
		return reject(domain.ErrPhaseBusy, "%s", active.InstanceID)
	}

	var out Outcome
	activate(s, id, now, &out)
	return out
}

func activate(s *domain.Session, id domain.InstanceID, now time.Time, out *Outcome) {
	idx := s.Timeline.Index(id)
	module := &s.Timeline.Modules[idx]
	module.Status = domain.ModuleActive
	module.StartedAt = now
	module.SuspendedFor = 0
	s.Timeline.OpenSpace = false

	started := *module
	out.Module = &started
	out.signal(SignalModuleStarted)
	out.prefetch(started.LibraryID)
}

// finishModule is the shared completion path for complete and skip.
func finishModule(s *domain.Session, id domain.InstanceID, status domain.ModuleStatus, now time.Time) Outcome {
	idx := s.Timeline.Index(id)
	if idx < 0 {
		return reject(domain.ErrInstanceNotFound, "%s", id)
	}
	module := &s.Timeline.Modules[idx]
	if module.Status.Finished() {
		return reject(domain.ErrModuleFinished, "%s is %s", id, module.Status)
	}

	if module.Status == domain.ModuleActive {
		module.SuspendedFor += s.Suspension.Overlap(module.StartedAt, now)
	}
	module.Status = status
	module.CompletedAt = now
	finished := *module
	s.Timeline.History = append(s.Timeline.History, domain.NewHistoryRecord(finished, now))

	out := Outcome{Module: &finished}
	if finished.IsBoosterModule || !s.Status.Running() || finished.Phase != s.CurrentPhase {
		return out
	}

	switch finished.Phase {
	case domain.PhaseComeUp:
		if s.CheckIn.HasIndicatedFullyArrived {
			s.CheckIn.EndChoiceVisible = true
			out.signal(SignalEndOfPhaseChoice)
		} else {
			raiseCheckIn(s, now, &out)
		}
		if _, ok := s.Timeline.NextUpcoming(domain.PhaseComeUp); !ok {
			enterOpenSpaceInto(s, &out)
		}
	default:
		if _, busy := s.Timeline.Active(finished.Phase); busy {
			return out
		}
		if next, ok := s.Timeline.NextUpcoming(finished.Phase); ok {
			activate(s, next.InstanceID, now, &out)
			out.Module = &finished
			return out
		}
		enterOpenSpaceInto(s, &out)
		if finished.Phase == domain.PhasePeak {
			out.signal(SignalPeakExitCheckIn)
		} else {
			out.signal(SignalIntegrationExitCheckIn)
		}
	}
	return out
}

func enterOpenSpace(s *domain.Session) Outcome {
	if !s.Status.Running() {
		return invalid(s.Status, "enter open space")
	}
	var out Outcome
	enterOpenSpaceInto(s, &out)
	return out
}

func enterOpenSpaceInto(s *domain.Session, out *Outcome) {
	if s.Timeline.OpenSpace {
		return
	}
	s.Timeline.OpenSpace = true
	out.signal(SignalOpenSpace)
}
