package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/fsx/internal/fs"
)

// CLI provides a clean interface for running shell sessions in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string

	// FS is the filesystem the shell uses. Defaults to [fs.Real]; set a
	// [fs.Chaos] to inject failures.
	FS fs.FS
}

// NewCLI creates a new test CLI with a temp directory as the starting
// directory and an isolated HOME so no user config is picked up.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:   t,
		Dir: t.TempDir(),
		Env: map[string]string{"HOME": t.TempDir()},
		FS:  fs.NewReal(),
	}
}

// Run feeds lines to the shell as stdin and returns stdout, stderr, and exit code.
// Input ends after the last line, so a script without "exit" ends at EOF.
func (r *CLI) Run(lines ...string) (string, string, int) {
	var stdin string
	if len(lines) > 0 {
		stdin = strings.Join(lines, "\n") + "\n"
	}

	var outBuf, errBuf bytes.Buffer

	code := run(strings.NewReader(stdin), &outBuf, &errBuf, r.Dir, r.Env, r.FS)

	return outBuf.String(), errBuf.String(), code
}

// MustRun runs the script and fails the test if anything was written to
// stderr or the exit code is non-zero. Returns stdout.
func (r *CLI) MustRun(lines ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(lines...)
	if code != 0 || stderr != "" {
		r.t.Fatalf("script %q failed: exit=%d\nstderr: %s\nstdout: %s", lines, code, stderr, stdout)
	}

	return stdout
}

// MustFail runs the script and fails the test if nothing was written to
// stderr. Returns stderr.
func (r *CLI) MustFail(lines ...string) string {
	r.t.Helper()

	stdout, stderr, _ := r.Run(lines...)
	if stderr == "" {
		r.t.Fatalf("script %q should have reported an error\nstdout: %s", lines, stdout)
	}

	return stderr
}

// Path returns the absolute path of name inside the test directory.
func (r *CLI) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// ReadFile reads and returns the content of a file in the test directory.
func (r *CLI) ReadFile(name string) string {
	r.t.Helper()

	content, err := os.ReadFile(r.Path(name))
	if err != nil {
		r.t.Fatalf("failed to read %s: %v", name, err)
	}

	return string(content)
}

// WriteFile writes content to a file in the test directory.
func (r *CLI) WriteFile(name, content string) {
	r.t.Helper()

	path := r.Path(name)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create parent of %s: %v", name, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		r.t.Fatalf("failed to write %s: %v", name, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
