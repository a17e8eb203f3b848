package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// findCLI locates a prebuilt heartline binary. HEARTLINE_BIN_DIR overrides
// the default ../../bin (relative to tests/e2e).
func findCLI(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("HEARTLINE_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "heartline")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/heartline ./cmd/heartline'.", cliPath)
	}
	return cliPath
}

// isolatedEnv points HOME, XDG dirs and the database at tempDir.
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") || strings.HasPrefix(e, "HEARTLINE_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("XDG_CONFIG_HOME=%s", tempDir),
		fmt.Sprintf("HEARTLINE_CONFIG=%s", filepath.Join(tempDir, "heartline", "heartline.db")),
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := findCLI(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	today := time.Now().UTC()
	day := func(offset int) string { return today.AddDate(0, 0, offset).Format("2006-01-02") }

	t.Log("Initializing CLI...")
	runCmd(t, cliPath, env, "init")
	runCmd(t, cliPath, env, "settings", "--timezone=UTC")

	out := runCmd(t, cliPath, env, "journey")
	if !strings.Contains(out, "heartline onboard") {
		t.Errorf("journey without a profile should prompt for onboarding, got:\n%s", out)
	}

	runCmd(t, cliPath, env, "patient", "set", "--index-date", day(-5), "--name", "E2E")
	for offset := -4; offset <= -1; offset++ {
		runCmd(t, cliPath, env, "task", "mark", "--date", day(offset), "--all")
	}
	runCmd(t, cliPath, env, "med", "log", "aspirin")
	runCmd(t, cliPath, env, "metric", "log", "heart_rate", "64", "--unit", "bpm")

	out = runCmd(t, cliPath, env, "journey", "--last", "0")
	for _, want := range []string{"Day 1", "Day 5", day(-4), day(0)} {
		if !strings.Contains(out, want) {
			t.Errorf("journey output missing %q:\n%s", want, out)
		}
	}

	out = runCmd(t, cliPath, env, "streak")
	if !strings.Contains(out, "4 day streak at risk") {
		t.Errorf("streak output = %q, want today's open day to put the 4 day run at risk", out)
	}

	// finishing today turns the warning into an achievement
	runCmd(t, cliPath, env, "task", "mark", "--education")
	out = runCmd(t, cliPath, env, "notify", "--dry-run")
	if !strings.Contains(out, "[DRY RUN]") {
		t.Errorf("notify --dry-run output = %q, want a pending achievement", out)
	}

	// without a tray app the notice is logged and stays pending
	runCmd(t, cliPath, env, "notify")
	out = runCmd(t, cliPath, env, "notify", "--dry-run")
	if !strings.Contains(out, "[DRY RUN]") {
		t.Errorf("undelivered notice should still be pending, got %q", out)
	}

	runCmd(t, cliPath, env, "backup", "create")
	out = runCmd(t, cliPath, env, "backup", "list")
	if !strings.Contains(out, "heartline-") {
		t.Errorf("backup list output = %q", out)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
