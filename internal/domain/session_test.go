package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func TestSessionCloneIsDeep(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.Timeline.Modules = []ModuleInstance{{InstanceID: "a", Phase: PhasePeak, Status: ModuleUpcoming}}
	s.PhaseWindows[PhaseComeUp] = PhaseWindow{StartedAt: t0}
	s.Captures[TransitionComeUpToPeak] = Capture{Text: "hello", CapturedAt: t0}
	s.FollowUp.Statuses[FollowUpCheckIn] = FollowUpAvailable
	s.Intake.Medications = []string{"lithium"}

	clone := s.Clone()
	clone.Timeline.Modules[0].Status = ModuleActive
	clone.PhaseWindows[PhaseComeUp] = PhaseWindow{}
	delete(clone.Captures, TransitionComeUpToPeak)
	clone.FollowUp.Statuses[FollowUpCheckIn] = FollowUpCompleted
	clone.Intake.Medications[0] = "none"

	assert.Equal(t, ModuleUpcoming, s.Timeline.Modules[0].Status)
	assert.Equal(t, t0, s.PhaseWindows[PhaseComeUp].StartedAt)
	assert.True(t, s.Captures.Recorded(TransitionComeUpToPeak))
	assert.Equal(t, FollowUpAvailable, s.FollowUp.StatusOf(FollowUpCheckIn))
	assert.Equal(t, "lithium", s.Intake.Medications[0])
}

func TestModuleElapsedExcludesSuspension(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.Timeline.Modules = []ModuleInstance{{
		InstanceID: "m1",
		Phase:      PhasePeak,
		Status:     ModuleActive,
		StartedAt:  t0,
		Duration:   20 * time.Minute,
	}}

	s.Suspend(SuspendBoosterModal, t0.Add(5*time.Minute))
	module := s.Timeline.Modules[0]
	assert.Equal(t, 5*time.Minute, module.Elapsed(t0.Add(8*time.Minute), s.Suspension))

	s.Unsuspend(SuspendBoosterModal, t0.Add(9*time.Minute))
	module = s.Timeline.Modules[0]
	require.Equal(t, 4*time.Minute, module.SuspendedFor)
	assert.Equal(t, 6*time.Minute, module.Elapsed(t0.Add(10*time.Minute), s.Suspension))
	assert.Equal(t, 14*time.Minute, module.Remaining(t0.Add(10*time.Minute), s.Suspension))
}

func TestOverlappingSuspensionReasonsCountOnce(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.Timeline.Modules = []ModuleInstance{{InstanceID: "m1", Phase: PhasePeak, Status: ModuleActive, StartedAt: t0}}

	s.Suspend(SuspendPaused, t0.Add(time.Minute))
	s.Suspend(SuspendBoosterModal, t0.Add(2*time.Minute))
	s.Unsuspend(SuspendBoosterModal, t0.Add(3*time.Minute))
	assert.True(t, s.Suspension.Active())
	assert.Zero(t, s.Timeline.Modules[0].SuspendedFor)

	s.Unsuspend(SuspendPaused, t0.Add(4*time.Minute))
	assert.False(t, s.Suspension.Active())
	assert.Equal(t, 3*time.Minute, s.Timeline.Modules[0].SuspendedFor)
	assert.Equal(t, 2*time.Minute, s.Timeline.Modules[0].Elapsed(t0.Add(5*time.Minute), s.Suspension))
}

func TestStripTransientClosesModalsOnly(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.Timeline.Modules = []ModuleInstance{{InstanceID: "m1", Phase: PhasePeak, Status: ModuleActive, StartedAt: t0}}
	s.Suspend(SuspendPaused, t0.Add(time.Minute))
	s.Suspend(SuspendBoosterModal, t0.Add(time.Minute))
	s.Booster.ModalVisible = true
	s.CheckIn.PromptVisible = true
	s.CheckIn.EndChoiceVisible = true

	s.StripTransient(t0.Add(2 * time.Minute))

	assert.False(t, s.Booster.ModalVisible)
	assert.False(t, s.CheckIn.PromptVisible)
	assert.False(t, s.CheckIn.EndChoiceVisible)
	assert.Equal(t, ModuleActive, s.Timeline.Modules[0].Status)
	assert.Equal(t, []SuspendReason{SuspendPaused}, s.Suspension.Reasons)
	assert.Equal(t, t0.Add(time.Minute), s.Suspension.Since)
}

func TestSinceIngestion(t *testing.T) {
	t.Parallel()

	s := NewSession()
	assert.Zero(t, s.SinceIngestion(t0))

	s.IngestedAt = t0
	assert.Equal(t, 90*time.Minute, s.SinceIngestion(t0.Add(90*time.Minute)))
	assert.Zero(t, s.SinceIngestion(t0.Add(-time.Minute)))
}
