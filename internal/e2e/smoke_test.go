package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	HookSpecificOutput struct {
		HookEventName     string `json:"hookEventName"`
		AdditionalContext string `json:"additionalContext"`
	} `json:"hookSpecificOutput"`
}

func TestSmokeFlow(t *testing.T) {
	project := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeMemoryFixture(project))

	stdout, stderr, err := runHook(t, binaryPath, "session-start", map[string]any{"cwd": project, "session_id": "e2e", "source": "startup"})
	require.NoError(t, err, "stderr: %s", stderr)
	start := decode(t, stdout)
	assert.Equal(t, "SessionStart", start.HookSpecificOutput.HookEventName)
	assert.Contains(t, start.HookSpecificOutput.AdditionalContext, "SESSION START - STARTUP")

	var footer envelope
	for i := 0; i < 5; i++ {
		stdout, stderr, err = runHook(t, binaryPath, "user-prompt-submit", map[string]any{"cwd": project, "session_id": "e2e", "prompt": "go"})
		require.NoError(t, err, "stderr: %s", stderr)
		footer = decode(t, stdout)
	}
	assert.Equal(t, "UserPromptSubmit", footer.HookSpecificOutput.HookEventName)
	assert.Contains(t, footer.HookSpecificOutput.AdditionalContext, "📊 Activity: 5 ops")

	stdout, stderr, err = runHook(t, binaryPath, "stop", map[string]any{"cwd": project, "session_id": "e2e"})
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(project, ".claude", "memory", "activeContext.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## 📜 Session Updates")
	assert.Contains(t, string(data), "- Activity: 5 operations")

	for _, stream := range []string{"session_start", "user_prompt_submit", "stop"} {
		assert.FileExists(t, filepath.Join(project, "logs", stream+".json"))
	}
}

func TestSmokeMalformedInputExitsZero(t *testing.T) {
	binaryPath := buildBinary(t)

	cmd := exec.Command(binaryPath, "hook", "user-prompt-submit")
	cmd.Dir = t.TempDir()
	cmd.Stdin = strings.NewReader("{not json")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	require.NoError(t, cmd.Run())
	assert.Empty(t, stdout.String())
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "coderbrain-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/coderbrain")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build coderbrain binary: %s", string(output))
	return binaryPath
}

func runHook(t *testing.T, binaryPath, hook string, payload map[string]any) (string, string, error) {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	cmd := exec.Command(binaryPath, "hook", hook)
	cmd.Stdin = bytes.NewReader(data)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, stdout string) envelope {
	t.Helper()

	var out envelope
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), "stdout: %s", stdout)
	return out
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeMemoryFixture(project string) error {
	memoryDir := filepath.Join(project, ".claude", "memory")
	if err := os.MkdirAll(memoryDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(memoryDir, "activeContext.md"), []byte("# Active Context\n\n## Current Focus\nSmoke test\n"), 0o644)
}
