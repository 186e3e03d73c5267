package domain

import (
	"fmt"
	"strings"
	"time"
)

type FollowUpModule string

const (
	FollowUpCheckIn     FollowUpModule = "check-in"
	FollowUpRevisit     FollowUpModule = "revisit"
	FollowUpIntegration FollowUpModule = "integration"
)

var FollowUpModules = []FollowUpModule{FollowUpCheckIn, FollowUpRevisit, FollowUpIntegration}

func ParseFollowUpModule(raw string) (FollowUpModule, error) {
	module := FollowUpModule(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range FollowUpModules {
		if module == known {
			return module, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFollowUp, raw)
}

type FollowUpStatus string

const (
	FollowUpLocked    FollowUpStatus = "locked"
	FollowUpAvailable FollowUpStatus = "available"
	FollowUpCompleted FollowUpStatus = "completed"
)

const (
	FollowUpCheckInDelay     = 24 * time.Hour
	FollowUpRevisitDelay     = 24 * time.Hour
	FollowUpIntegrationDelay = 48 * time.Hour
)

type UnlockTimes struct {
	CheckIn     time.Time
	Revisit     time.Time
	Integration time.Time
}

// UnlockTimesFrom derives the follow-up schedule from the session close time.
func UnlockTimesFrom(closedAt time.Time) UnlockTimes {
	return UnlockTimes{
		CheckIn:     closedAt.Add(FollowUpCheckInDelay),
		Revisit:     closedAt.Add(FollowUpRevisitDelay),
		Integration: closedAt.Add(FollowUpIntegrationDelay),
	}
}

func (u UnlockTimes) For(module FollowUpModule) time.Time {
	switch module {
	case FollowUpCheckIn:
		return u.CheckIn
	case FollowUpRevisit:
		return u.Revisit
	case FollowUpIntegration:
		return u.Integration
	default:
		return time.Time{}
	}
}

func (u UnlockTimes) Set() bool {
	return !u.CheckIn.IsZero()
}

// FollowUp tracks post-session modules. Statuses only move forward.
type FollowUp struct {
	UnlockTimes UnlockTimes
	Statuses    map[FollowUpModule]FollowUpStatus
	CompletedAt map[FollowUpModule]time.Time
}

func NewFollowUp() FollowUp {
	statuses := make(map[FollowUpModule]FollowUpStatus, len(FollowUpModules))
	for _, module := range FollowUpModules {
		statuses[module] = FollowUpLocked
	}
	return FollowUp{Statuses: statuses, CompletedAt: map[FollowUpModule]time.Time{}}
}

func (f FollowUp) StatusOf(module FollowUpModule) FollowUpStatus {
	if status, ok := f.Statuses[module]; ok && status != "" {
		return status
	}
	return FollowUpLocked
}

func (f FollowUp) Clone() FollowUp {
	out := FollowUp{UnlockTimes: f.UnlockTimes}
	out.Statuses = make(map[FollowUpModule]FollowUpStatus, len(f.Statuses))
	for k, v := range f.Statuses {
		out.Statuses[k] = v
	}
	out.CompletedAt = make(map[FollowUpModule]time.Time, len(f.CompletedAt))
	for k, v := range f.CompletedAt {
		out.CompletedAt[k] = v
	}
	return out
}
