// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Isolate tests from the user's qcl config and state directories

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestEnvironment points qcl at temporary config and state directories
type TestEnvironment struct {
	ConfigDir string
	StateDir  string
	HomeDir   string

	t *testing.T
}

// NewTestEnvironment creates the directories and sets QCL_CONFIG_DIR,
// QCL_STATE_DIR and HOME for the duration of the test. Styling is
// disabled with NO_COLOR.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		ConfigDir: filepath.Join(root, "config", "qcl"),
		StateDir:  filepath.Join(root, "state", "qcl"),
		HomeDir:   filepath.Join(root, "home"),
		t:         t,
	}

	for _, dir := range []string{env.ConfigDir, env.StateDir, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("QCL_CONFIG_DIR", env.ConfigDir)
	t.Setenv("QCL_STATE_DIR", env.StateDir)
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("NO_COLOR", "1")

	return env
}

// SnippetsPath is the default snippet file of the environment
func (env *TestEnvironment) SnippetsPath() string {
	return filepath.Join(env.ConfigDir, "snippets.yaml")
}

// WriteSnippets writes the default snippet file
func (env *TestEnvironment) WriteSnippets(content string) string {
	env.t.Helper()
	return WriteFile(env.t, env.ConfigDir, "snippets.yaml", content)
}

// WriteConfig writes config.toml
func (env *TestEnvironment) WriteConfig(content string) string {
	env.t.Helper()
	return WriteFile(env.t, env.ConfigDir, "config.toml", content)
}

// WriteFile writes content to dir/name, creating dir, and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
