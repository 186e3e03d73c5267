package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guide-cli/internal/application"
	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func activeStatus(now time.Time) application.Status {
	session := domain.NewSession()
	session.Status = domain.StatusActive
	session.CurrentPhase = domain.PhasePeak
	session.IngestedAt = t0
	session.TargetDuration = domain.StandardSessionDuration
	session.SafetyWarnings = []domain.SafetyWarning{domain.WarningHeartCondition}
	session.ConsiderBooster = true

	current := domain.ModuleInstance{
		InstanceID: "m1",
		LibraryID:  "music-journey",
		Phase:      domain.PhasePeak,
		Duration:   45 * time.Minute,
		Status:     domain.ModuleActive,
		StartedAt:  t0.Add(60 * time.Minute),
	}
	next := domain.ModuleInstance{
		InstanceID: "m2",
		LibraryID:  "inner-dialogue",
		Phase:      domain.PhasePeak,
		Order:      1,
		Duration:   30 * time.Minute,
		Status:     domain.ModuleUpcoming,
	}
	session.Timeline.Modules = []domain.ModuleInstance{current, next}

	return application.Status{
		Session:  session,
		Triggers: engine.Evaluate(now, session),
		Elapsed:  session.SinceIngestion(now),
		Current:  &application.ModuleProgress{Instance: current, Title: "Music journey", Elapsed: 10 * time.Minute, Remaining: 35 * time.Minute},
		Next:     &application.ModuleProgress{Instance: next, Title: "Inner dialogue", Remaining: 30 * time.Minute},
	}
}

func TestRenderNotStarted(t *testing.T) {
	output, err := Render(application.Status{Session: domain.NewSession()}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Guide session")
	assert.Contains(t, output, "No session in progress.")
}

func TestRenderActiveSession(t *testing.T) {
	now := t0.Add(95 * time.Minute)

	output, err := Render(activeStatus(now), RenderOptions{Now: now, BarWidth: 9})

	require.NoError(t, err)
	assert.Contains(t, output, "status: Active")
	assert.Contains(t, output, "phase: Peak")
	assert.Contains(t, output, "elapsed: 1h35m")
	assert.Contains(t, output, "target: 6h00m")
	assert.Contains(t, output, "safety: heart condition")
	assert.Contains(t, output, "Music journey")
	assert.Contains(t, output, "[==-------]")
	assert.Contains(t, output, "10m / 45m")
	assert.Contains(t, output, "(35m left)")
	assert.Contains(t, output, "next: Inner dialogue (30m)")
	assert.Contains(t, output, "booster: time to decide")
}

func TestRenderBoosterWindowClosedAndCheckIn(t *testing.T) {
	now := t0.Add(160 * time.Minute)
	status := activeStatus(now)
	status.Session.Booster.Status = domain.BoosterPrompted
	status.Triggers = engine.Evaluate(now, status.Session)

	output, err := Render(status, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "booster: window closed, dismiss the prompt")

	status.Session.Booster.Status = domain.BoosterSkipped
	status.Session.CurrentPhase = domain.PhaseComeUp
	status.Current = nil
	status.Next = nil
	status.Triggers = engine.Triggers{Now: now, CheckInDue: true}

	output, err = Render(status, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "booster: skipped")
	assert.Contains(t, output, "no module running")
	assert.Contains(t, output, "check-in: how are you feeling?")
}

func TestRenderOpenSpace(t *testing.T) {
	now := t0.Add(200 * time.Minute)
	status := activeStatus(now)
	status.Current = nil
	status.Next = nil
	status.Session.ConsiderBooster = false
	status.Session.Timeline.OpenSpace = true

	output, err := Render(status, RenderOptions{Now: now})
	require.NoError(t, err)
	assert.Contains(t, output, "open space")
	assert.NotContains(t, output, "booster:")
}

func TestRenderCompletedSessionShowsFollowUps(t *testing.T) {
	closedAt := t0.Add(6 * time.Hour)
	now := closedAt.Add(2 * time.Hour)

	session := domain.NewSession()
	session.Status = domain.StatusCompleted
	session.CurrentPhase = domain.PhaseFollowUp
	session.IngestedAt = t0
	session.ClosedAt = closedAt
	session.FinalDurationSeconds = int64((6 * time.Hour).Seconds())

	unlocks := domain.UnlockTimesFrom(closedAt)
	output, err := Render(application.Status{
		Session:  session,
		Triggers: engine.Triggers{Now: now},
		FollowUps: []application.FollowUpItem{
			{Module: domain.FollowUpCheckIn, Status: domain.FollowUpCompleted, UnlocksAt: unlocks.CheckIn},
			{Module: domain.FollowUpRevisit, Status: domain.FollowUpLocked, UnlocksAt: unlocks.Revisit},
			{Module: domain.FollowUpIntegration, Status: domain.FollowUpLocked, UnlocksAt: unlocks.Integration},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "status: Completed")
	assert.Contains(t, output, "duration: 6h00m")
	assert.Contains(t, output, "Check In")
	assert.Contains(t, output, "completed")
	assert.Contains(t, output, "unlocks in 22 hours")
	assert.Contains(t, output, "unlocks in 2 days")
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"come-up":             "Come Up",
		"not-started":         "Not Started",
		"substance-checklist": "Substance Checklist",
		"peak":                "Peak",
	}
	for raw, want := range tests {
		assert.Equal(t, want, Label(raw), raw)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "0m", FormatDuration(45*time.Second))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "1h35m", FormatDuration(95*time.Minute))
	assert.Equal(t, "8h00m", FormatDuration(domain.LongSessionDuration))
}

func TestRenderProgressBarClamps(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "[----]", renderProgressBar(-10, 4, s))
	assert.Equal(t, "[====]", renderProgressBar(250, 4, s))
	assert.Equal(t, "", renderProgressBar(50, 0, s))
}

func TestFormatUnlockRelative(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "locked", formatUnlockRelative(time.Time{}, now))
	assert.Equal(t, "unlocks now", formatUnlockRelative(now.Add(-time.Minute), now))
	assert.Equal(t, "unlocks in 1 hour (09:30)", formatUnlockRelative(now.Add(30*time.Minute), now))
	assert.Equal(t, "unlocks in 1 day (09:00 on 16 Mar)", formatUnlockRelative(now.Add(24*time.Hour), now))
}
