package e2e

import (
	"bytes"
	"encoding/json"
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
	require.NoError(t, writeConfigFixture(home))

	stdout, stderr, err := runWS(t, binaryPath, home, "start", "--username", "Ada")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "player: Ada")

	_, stderr, err = runWS(t, binaryPath, home, "act", "plant", "a", "forest")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err = runWS(t, binaryPath, home, "status", "--json")
	require.NoError(t, err, "stderr: %s", stderr)

	var status struct {
		State      string            `json:"state"`
		Username   string            `json:"username"`
		Transcript []json.RawMessage `json:"transcript"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, "Ada", status.Username)
	assert.Len(t, status.Transcript, 3)

	stdout, stderr, err = runWS(t, binaryPath, home, "reset", "--yes")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Session reset.")

	for _, name := range []string{"world_saver_username_v1", "world_saver_chat_context_v1", "world_saver_progress_v1"} {
		_, err := os.Stat(filepath.Join(home, ".worldsaver", "state", name))
		assert.True(t, os.IsNotExist(err), "%s should be removed", name)
	}
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ws-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ws")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ws binary: %s", string(output))
	return binaryPath
}

func runWS(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)
	cmd.Dir = home

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

func writeConfigFixture(home string) error {
	configDir := filepath.Join(home, ".worldsaver")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[narration]
offline = true

[stream]
cadence = "0s"
closing_delay = "0s"
`
	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600)
}
