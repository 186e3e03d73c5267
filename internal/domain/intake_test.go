package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeSafetyWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		intake IntakeResponses
		want   []SafetyWarning
	}{
		{
			name:   "nothing to flag",
			intake: IntakeResponses{HasSitter: true},
			want:   []SafetyWarning{},
		},
		{
			name:   "no sitter",
			intake: IntakeResponses{},
			want:   []SafetyWarning{WarningNoSitter},
		},
		{
			name: "medical history and medications",
			intake: IntakeResponses{
				HeartCondition:     true,
				PsychiatricHistory: true,
				Medications:        []string{"Sertraline 50mg", "Lithium carbonate"},
				HasSitter:          true,
			},
			want: []SafetyWarning{WarningHeartCondition, WarningPsychiatricHistory, WarningSSRI, WarningLithium},
		},
		{
			name:   "maoi brand keyword",
			intake: IntakeResponses{Medications: []string{"phenelzine"}, HasSitter: true},
			want:   []SafetyWarning{WarningMAOI},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.intake.SafetyWarnings())
		})
	}
}

func TestIntakeTargetDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4*time.Hour, IntakeResponses{SessionLength: LengthShort}.TargetDuration())
	assert.Equal(t, 8*time.Hour, IntakeResponses{SessionLength: "LONG"}.TargetDuration())
	assert.Equal(t, 6*time.Hour, IntakeResponses{}.TargetDuration())
}

func TestFollowUpUnlockTimes(t *testing.T) {
	t.Parallel()

	closed := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	unlock := UnlockTimesFrom(closed)

	assert.Equal(t, closed.Add(24*time.Hour), unlock.CheckIn)
	assert.Equal(t, unlock.CheckIn, unlock.Revisit)
	assert.Equal(t, closed.Add(48*time.Hour), unlock.Integration)
	assert.False(t, unlock.Integration.Before(unlock.CheckIn))
	assert.Equal(t, FollowUpLocked, NewFollowUp().StatusOf(FollowUpRevisit))
	assert.Equal(t, FollowUpLocked, FollowUp{}.StatusOf(FollowUpRevisit))
}

func TestRejectionErrorUnwraps(t *testing.T) {
	t.Parallel()

	err := error(Reject(ErrIntensityBlocked, "breathwork is high intensity during come-up"))
	require.True(t, errors.Is(err, ErrIntensityBlocked))
	assert.Equal(t, "module intensity is blocked in this phase: breathwork is high intensity during come-up", err.Error())

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, ErrIntensityBlocked, rejection.Code)
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	response, err := ParseCheckInResponse("Fully-Arrived")
	require.NoError(t, err)
	assert.Equal(t, CheckInFullyArrived, response)
	_, err = ParseCheckInResponse("maybe")
	assert.ErrorIs(t, err, ErrUnknownCheckInAnswer)

	module, err := ParseFollowUpModule("revisit")
	require.NoError(t, err)
	assert.Equal(t, FollowUpRevisit, module)
	_, err = ParseFollowUpModule("week-later")
	assert.ErrorIs(t, err, ErrUnknownFollowUp)

	kind, err := ParseTransitionKind("peak-to-integration")
	require.NoError(t, err)
	assert.Equal(t, TransitionPeakToIntegration, kind)
	_, err = ParseTransitionKind("sideways")
	assert.ErrorIs(t, err, ErrUnknownTransition)
}
