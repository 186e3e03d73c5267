package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	_, stderr, err := runGuide(t, binaryPath, home, "intake", "start")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runGuide(t, binaryPath, home, "intake", "complete", "--sitter", "--length", "standard")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "status: Pre Session")

	stdout, stderr, err = runGuide(t, binaryPath, home, "session", "start", "--ago", "10m")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "signal: session-started")

	stdout, stderr, err = runGuide(t, binaryPath, home, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Guide session")
	assert.Contains(t, stdout, "phase: Come Up")
	assert.FileExists(t, filepath.Join(home, ".guide", "session.json"))
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "guide-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/guide")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build guide binary: %s", string(output))
	return binaryPath
}

func runGuide(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"GUIDE_HOME="+filepath.Join(home, ".guide"),
		"GUIDE_NOTIFY=off",
		"GUIDE_STORAGE=file",
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
