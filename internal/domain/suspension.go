package domain

import (
	"sort"
	"time"
)

type SuspendReason string

const (
	SuspendBoosterModal SuspendReason = "booster-modal"
	SuspendCheckInModal SuspendReason = "check-in-modal"
	SuspendPaused       SuspendReason = "paused"
)

// Transient reports whether the reason belongs to an on-screen modal and is
// dropped on save.
func (r SuspendReason) Transient() bool {
	return r == SuspendBoosterModal || r == SuspendCheckInModal
}

// Suspension is the set of reasons currently holding the active module's
// clock. Since is the instant the set became non-empty.
type Suspension struct {
	Reasons []SuspendReason
	Since   time.Time
}

func (s Suspension) Active() bool {
	return len(s.Reasons) > 0
}

func (s Suspension) Has(reason SuspendReason) bool {
	for _, r := range s.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

func (s Suspension) Clone() Suspension {
	out := Suspension{Since: s.Since}
	if s.Reasons != nil {
		out.Reasons = append([]SuspendReason(nil), s.Reasons...)
	}
	return out
}

// With returns the set with reason added. Since is set when the set was empty.
func (s Suspension) With(reason SuspendReason, now time.Time) Suspension {
	if s.Has(reason) {
		return s
	}
	out := s.Clone()
	if !out.Active() {
		out.Since = now
	}
	out.Reasons = append(out.Reasons, reason)
	sort.Slice(out.Reasons, func(i, j int) bool { return out.Reasons[i] < out.Reasons[j] })
	return out
}

// Without returns the set with reason removed. closed is true when the set
// became empty, in which case the interval [Since, now) has ended.
func (s Suspension) Without(reason SuspendReason) (Suspension, bool) {
	if !s.Has(reason) {
		return s, false
	}
	out := Suspension{Since: s.Since}
	for _, r := range s.Reasons {
		if r != reason {
			out.Reasons = append(out.Reasons, r)
		}
	}
	if len(out.Reasons) == 0 {
		return Suspension{}, true
	}
	return out, false
}

// Overlap returns how much of the open interval falls after startedAt.
func (s Suspension) Overlap(startedAt, now time.Time) time.Duration {
	if !s.Active() {
		return 0
	}
	from := s.Since
	if startedAt.After(from) {
		from = startedAt
	}
	if !now.After(from) {
		return 0
	}
	return now.Sub(from)
}
