package migrate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guide-cli/internal/domain"
)

const v2Blob = `{
  "status": "completed",
  "currentPhase": "integration",
  "intakeCompleted": true,
  "timelineGenerated": true,
  "considerBooster": true,
  "ingestedAt": "2026-03-14T18:00:00Z",
  "closedAt": 1773525600,
  "finalDurationSeconds": 21600,
  "phaseWindows": {
    "come-up": {"startedAt": "2026-03-14T18:00:00.000Z", "endedAt": 1773513000000},
    "peak": {"startedAt": "1773513000", "endedAt": ""}
  },
  "modules": [
    {"instanceId": "m1", "libraryId": "grounding", "phase": "come-up", "order": 0, "status": "completed", "startedAt": "2026-03-14 18:05:00", "completedAt": null},
    {"instanceId": "m2", "libraryId": "booster-consideration", "phase": "peak", "order": 0, "status": "upcoming"}
  ],
  "history": []
}`

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &state))
	return state
}

func TestSessionChainShape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SessionVersion, Session.Current())
	assert.Equal(t, 2, Session.Oldest())
	assert.Equal(t, PreferencesVersion, Preferences.Current())
	assert.Equal(t, JournalVersion, Journal.Current())
	assert.Equal(t, 1, Journal.Oldest())
}

func TestMigrateInTwoHopsMatchesDirect(t *testing.T) {
	t.Parallel()

	direct, err := Session.Migrate(2, decode(t, v2Blob))
	require.NoError(t, err)

	halfway, err := Session.MigrateTo(2, 4, decode(t, v2Blob))
	require.NoError(t, err)
	assert.Equal(t, 4, halfway.Version)
	assert.Equal(t, "2026-03-14T18:00:00Z", halfway.State["ingestedAt"], "dates are normalized at 5")

	rest, err := Session.Migrate(4, halfway.State)
	require.NoError(t, err)

	assert.Equal(t, direct.State, rest.State)
	assert.Equal(t, SessionVersion, rest.Version)
	assert.True(t, direct.Migrated)
}

func TestMigrateNormalizesEveryDate(t *testing.T) {
	t.Parallel()

	result, err := Session.Migrate(2, decode(t, v2Blob))
	require.NoError(t, err)
	state := result.State

	ingested := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC).UnixMilli()
	closed := int64(1773525600000)
	assert.Equal(t, ingested, state["ingestedAt"])
	assert.Equal(t, closed, state["closedAt"])

	windows := state["phaseWindows"].(map[string]any)
	comeUp := windows["come-up"].(map[string]any)
	assert.Equal(t, ingested, comeUp["startedAt"])
	assert.Equal(t, int64(1773513000000), comeUp["endedAt"])
	peak := windows["peak"].(map[string]any)
	assert.Equal(t, int64(1773513000000), peak["startedAt"])
	assert.Nil(t, peak["endedAt"])

	modules := state["modules"].([]any)
	first := modules[0].(map[string]any)
	assert.Equal(t, time.Date(2026, 3, 14, 18, 5, 0, 0, time.UTC).UnixMilli(), first["startedAt"])
	assert.Nil(t, first["completedAt"])
	assert.Equal(t, false, first["isBoosterModule"])
	assert.Equal(t, 0, first["suspendedMs"])
	assert.Equal(t, true, modules[1].(map[string]any)["isBoosterModule"])

	followUp := state["followUp"].(map[string]any)
	unlock := followUp["unlockTimes"].(map[string]any)
	assert.Equal(t, closed+dayMillis, unlock["checkIn"])
	assert.Equal(t, closed+dayMillis, unlock["revisit"])
	assert.Equal(t, closed+2*dayMillis, unlock["integration"])
	assert.Equal(t, "locked", followUp["status"].(map[string]any)["revisit"])

	booster := state["booster"].(map[string]any)
	assert.Equal(t, "pending", booster["status"])
	assert.Equal(t, map[string]any{"reasons": []any{}, "since": nil}, state["suspension"])
	assert.Equal(t, map[string]any{}, state["transitionCaptures"])
}

func TestMigrateKeepsExistingValues(t *testing.T) {
	t.Parallel()

	state := decode(t, `{"booster": {"status": "taken", "snoozeCount": 2, "takenAt": 1773519000000}}`)
	result, err := Session.Migrate(3, state)
	require.NoError(t, err)

	booster := result.State["booster"].(map[string]any)
	assert.Equal(t, "taken", booster["status"])
	assert.Equal(t, float64(2), booster["snoozeCount"])
	assert.Equal(t, int64(1773519000000), booster["takenAt"])
}

func TestMigrateDoesNotTouchInput(t *testing.T) {
	t.Parallel()

	state := decode(t, v2Blob)
	_, err := Session.Migrate(2, state)
	require.NoError(t, err)

	assert.Equal(t, decode(t, v2Blob), state)
}

func TestMigrateVersionBounds(t *testing.T) {
	t.Parallel()

	result, err := Session.Migrate(1, map[string]any{"status": "active"})
	require.NoError(t, err)
	assert.True(t, result.Reset)
	assert.Nil(t, result.State)
	assert.Equal(t, SessionVersion, result.Version)

	_, err = Session.Migrate(SessionVersion+1, map[string]any{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)

	current, err := Session.Migrate(SessionVersion, map[string]any{"status": "active"})
	require.NoError(t, err)
	assert.False(t, current.Migrated)
	assert.Equal(t, map[string]any{"status": "active"}, current.State)

	_, err = Session.MigrateTo(5, 3, map[string]any{})
	assert.Error(t, err)
}

func TestMigrateLeavesIntakeNotesAlone(t *testing.T) {
	t.Parallel()

	state := decode(t, `{
		"ingestedAt": "2026-03-14T18:00:00Z",
		"intake": {"focus": "rest", "notes": {"wakeTime": "2026-03-15", "bedTime": "7am", "startedAt": "after dinner"}}
	}`)
	result, err := Session.Migrate(3, state)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC).UnixMilli(), result.State["ingestedAt"])
	intake := result.State["intake"].(map[string]any)
	assert.Equal(t, map[string]any{
		"wakeTime":  "2026-03-15",
		"bedTime":   "7am",
		"startedAt": "after dinner",
	}, intake["notes"])
}

func TestNewChainRejectsGaps(t *testing.T) {
	t.Parallel()

	noop := func(m map[string]any) map[string]any { return m }

	_, err := NewChain("broken", Step{From: 1, Upgrade: noop}, Step{From: 3, Upgrade: noop})
	assert.ErrorContains(t, err, "step 3 follows 1")

	_, err = NewChain("empty")
	assert.Error(t, err)

	_, err = NewChain("nil", Step{From: 1})
	assert.Error(t, err)
}

func TestEpochMillis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "millis", in: float64(1773513000000), want: int64(1773513000000)},
		{name: "seconds", in: float64(1773513000), want: int64(1773513000000)},
		{name: "numeric string", in: "1773513000000", want: int64(1773513000000)},
		{name: "rfc3339 offset", in: "2026-03-14T19:00:00+01:00", want: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC).UnixMilli()},
		{name: "date only", in: "2026-03-14", want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{name: "wrapped", in: map[string]any{"$date": "2026-03-14"}, want: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{name: "zero", in: float64(0), want: nil},
		{name: "garbage", in: "yesterday", want: nil},
		{name: "bool", in: true, want: nil},
		{name: "nil", in: nil, want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, epochMillis(tc.in))
		})
	}
}

func TestPreferencesChain(t *testing.T) {
	t.Parallel()

	result, err := Preferences.Migrate(1, map[string]any{"updatedAt": "2026-03-14T18:00:00Z", "notificationsEnabled": false})
	require.NoError(t, err)

	assert.Equal(t, false, result.State["notificationsEnabled"])
	assert.Equal(t, true, result.State["prefetchEnabled"])
	assert.Equal(t, time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC).UnixMilli(), result.State["updatedAt"])
}

func TestJournalChain(t *testing.T) {
	t.Parallel()

	result, err := Journal.Migrate(1, map[string]any{
		"id":        "e1",
		"content":   "colours are louder",
		"createdAt": "2026-03-14T19:30:00Z",
	})
	require.NoError(t, err)

	assert.True(t, result.Migrated)
	assert.Equal(t, JournalVersion, result.Version)
	assert.Equal(t, "", result.State["sourceTag"])
	assert.Equal(t, time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC).UnixMilli(), result.State["createdAt"])
}
