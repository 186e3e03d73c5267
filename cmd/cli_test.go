package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFlowThroughCLI(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "intake", "start")
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: Intake")

	stdout, _, err = executeCLI(t, home, "intake", "complete", "--length", "short", "--medication", "sertraline")
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: Pre Session")
	assert.Contains(t, stdout, "safety: ssri interaction")
	assert.Contains(t, stdout, "safety: no sitter")

	stdout, _, err = executeCLI(t, home, "session", "start", "--ago", "5m")
	require.NoError(t, err)
	assert.Contains(t, stdout, "signal: session-started")
	assert.Contains(t, stdout, "phase: Come Up")

	stdout, _, err = executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Guide session")
	assert.Contains(t, stdout, "status: Active")

	stdout, _, err = executeCLI(t, home, "timeline", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MODULE")
	assert.Contains(t, stdout, "Settling in")
	assert.Contains(t, stdout, "Breath awareness")
	assert.Contains(t, stdout, "Journaling")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "intake", "start")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"intake\"")
}

func TestRejectedEventExitsCleanly(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "session", "pause")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rejected:")
	assert.Contains(t, stdout, "invalid transition")
}

func TestTimelineAddBlockedModuleIsRejected(t *testing.T) {
	home := t.TempDir()
	completeIntake(t, home)

	stdout, _, err := executeCLI(t, home, "timeline", "add", "movement", "--phase", "come-up")
	require.NoError(t, err)
	assert.Contains(t, stdout, "rejected:")
	assert.Contains(t, stdout, "high intensity")

	stdout, _, err = executeCLI(t, home, "timeline", "list")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Free movement")
}

func TestTimelineAddWarnsAndAppends(t *testing.T) {
	home := t.TempDir()
	completeIntake(t, home)

	stdout, _, err := executeCLI(t, home, "timeline", "add", "body-scan", "--phase", "come-up")
	require.NoError(t, err)
	assert.Contains(t, stdout, "warning:")
	assert.Contains(t, stdout, "body-scan to come-up at position 2")

	stdout, _, err = executeCLI(t, home, "timeline", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Body scan")
}

func TestTimelineAddRequiresPhase(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "timeline", "add", "grounding")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"phase\" not set")
}

func TestSessionResetRequiresConfirmation(t *testing.T) {
	home := t.TempDir()
	completeIntake(t, home)

	_, _, err := executeCLI(t, home, "session", "reset")
	require.ErrorIs(t, err, errResetNotConfirmed)

	stdout, _, err := executeCLI(t, home, "session", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: Not Started")

	stdout, _, err = executeCLI(t, home, "timeline", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "timeline is empty")
}

func TestIntakeAnswersFileWithFlagOverride(t *testing.T) {
	home := t.TempDir()
	answers := filepath.Join(home, "answers.yaml")
	require.NoError(t, os.WriteFile(answers, []byte(`experience_level: some
focus: healing
session_length: long
has_sitter: false
heart_condition: true
`), 0o600))

	_, _, err := executeCLI(t, home, "intake", "start")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "intake", "complete", "--answers", answers, "--sitter")
	require.NoError(t, err)
	assert.Contains(t, stdout, "safety: heart condition")
	assert.NotContains(t, stdout, "safety: no sitter")

	stdout, _, err = executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\"healing\"")
}

func TestIntakeAnswersFileMissing(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "intake", "complete", "--answers", filepath.Join(home, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read intake answers")
}

func TestSQLiteStorageDriverPersistsAcrossInvocations(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GUIDE_STORAGE", "sqlite")

	_, _, err := executeCLI(t, home, "intake", "start")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "status: Intake")
	assert.FileExists(t, filepath.Join(home, ".guide", "guide.db"))
	assert.NoFileExists(t, filepath.Join(home, ".guide", "session.json"))
}

func TestUnknownStorageDriverFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GUIDE_STORAGE", "postgres")

	_, _, err := executeCLI(t, home, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestCaptureThenJournalList(t *testing.T) {
	home := t.TempDir()
	completeIntake(t, home)

	_, _, err := executeCLI(t, home, "session", "start")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "capture", "come-up-to-peak", "colours", "are", "louder")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "colours are louder")
	assert.Contains(t, stdout, "[transition:come-up-to-peak]")
}

func TestJournalListEmpty(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "journal is empty")
}

func TestPrefsSetAndShow(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "notifications  on")

	stdout, _, err = executeCLI(t, home, "prefs", "set", "--notifications=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "notifications  off")
	assert.Contains(t, stdout, "prefetch       on")

	stdout, _, err = executeCLI(t, home, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "notifications  off")
}

func TestPrefsSetWithoutFlagsFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "prefs", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestLibraryListFiltersByPhase(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "library", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "settling-in")
	assert.Contains(t, stdout, "music-journey")

	stdout, _, err = executeCLI(t, home, "library", "list", "--phase", "come-up")
	require.NoError(t, err)
	assert.Contains(t, stdout, "settling-in")
	assert.NotContains(t, stdout, "music-journey")
}

func TestFollowUpListBeforeCompletion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "followup", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MODULE")
	assert.Contains(t, stdout, "UNLOCKS")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "dev")

	stdout, _, err = executeCLI(t, home, "version", "--short")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestParseIngestedAt(t *testing.T) {
	now := mustTime(t, "2026-03-01T12:00:00Z")

	at, err := parseIngestedAt("", 0, now)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	at, err = parseIngestedAt("", 30*time.Minute, now)
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2026-03-01T11:30:00Z"), at)

	at, err = parseIngestedAt("2026-03-01T10:15:00Z", 0, now)
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2026-03-01T10:15:00Z"), at)

	_, err = parseIngestedAt("", -1, now)
	require.Error(t, err)

	_, err = parseIngestedAt("half past ten", 0, now)
	require.Error(t, err)
}

func mustTime(t *testing.T, raw string) time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	return at
}

func completeIntake(t *testing.T, home string) {
	t.Helper()

	_, _, err := executeCLI(t, home, "intake", "start")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "intake", "complete", "--sitter")
	require.NoError(t, err)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("GUIDE_HOME", filepath.Join(home, ".guide"))
	t.Setenv("GUIDE_NOTIFY", "off")
	t.Setenv("GUIDE_LOG", "")
	t.Setenv("GUIDE_TRACE", "")
	t.Setenv("GUIDE_CATALOG", "")
	if _, ok := os.LookupEnv("GUIDE_STORAGE"); !ok {
		t.Setenv("GUIDE_STORAGE", "")
	}

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
