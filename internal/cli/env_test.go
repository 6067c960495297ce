package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/quiltboard/internal/paths"
)

// testEnv is an isolated config and data directory pair for running the
// command tree in-process.
type testEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("QUILT_DATA_DIR", "")
	t.Setenv("QUILT_CONFIG_DIR", "")

	tempDir := t.TempDir()
	return &testEnv{
		t:       t,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
		DataDir: filepath.Join(tempDir, "data"),
	}
}

// writeConfig replaces config.yaml before the next run.
func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	if err := os.MkdirAll(e.Config, 0o755); err != nil {
		e.t.Fatalf("mkdir config: %v", err)
	}
	if err := os.WriteFile(paths.ConfigFile(e.Config), []byte(content), 0o644); err != nil {
		e.t.Fatalf("write config: %v", err)
	}
}

type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// run executes quilt with the env's directories prepended.
func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	all := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	return runQuilt(all...)
}

// mustRun fails the test on a non-zero exit code.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	if res.ExitCode != exitSuccess {
		e.t.Fatalf("quilt %v failed with exit code %d: %v\nstdout: %s\nstderr: %s",
			args, res.ExitCode, res.Err, res.Stdout, res.Stderr)
	}
	return res
}

func runQuilt(args ...string) cmdResult {
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return cmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
		Err:      err,
	}
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", s, err)
	}
	return v
}
