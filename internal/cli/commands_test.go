package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/fsx/internal/cli"
	"github.com/calvinalkan/fsx/internal/fs"
)

func TestMissingArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line       string
		wantStderr string
	}{
		{line: "cd", wantStderr: "Error: please specify a directory\n"},
		{line: "mkdir", wantStderr: "Error: please specify a directory name\n"},
		{line: "rmdir", wantStderr: "Error: please specify a directory name\n"},
		{line: "touch", wantStderr: "Error: please specify a file name\n"},
		{line: "rm", wantStderr: "Error: please specify a file name\n"},
		{line: "read", wantStderr: "Error: please specify a file name\n"},
		{line: "write", wantStderr: "Error: please specify a file name\n"},
		{line: "append", wantStderr: "Error: please specify a file name\n"},
		{line: "rename", wantStderr: "Error: please specify old and new names\n"},
		{line: "rename only-one", wantStderr: "Error: please specify old and new names\n"},
		{line: "stats", wantStderr: "Error: please specify a file or directory name\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			_, stderr, exitCode := c.Run(tt.line)

			if got, want := exitCode, 0; got != want {
				t.Errorf("exitCode=%d, want=%d", got, want)
			}

			if got, want := stderr, tt.wantStderr; got != want {
				t.Errorf("stderr=%q, want=%q", got, want)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("b.txt", "")
	c.WriteFile("sub/inner.txt", "")

	for _, verb := range []string{"ls", "dir"} {
		stdout := c.MustRun(verb)

		cli.AssertContains(t, stdout, "Directory contents:\n  b.txt\n  sub\n")
		cli.AssertNotContains(t, stdout, "inner.txt")
	}
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("ls")

	cli.AssertContains(t, stdout, "Directory contents:\n  (empty)\n")
}

func TestList_PermissionDenied(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	chaos := fs.NewChaos(fs.NewReal())
	chaos.SetPathState(c.Dir, fs.PathNoPermission)
	c.FS = chaos

	stdout, stderr, exitCode := c.Run("ls", "pwd")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "Error: readdir "+c.Dir+": permission denied")
	cli.AssertNotContains(t, stdout, "Directory contents:")
	cli.AssertContains(t, stdout, c.Dir+"\n")
}

// mkdir d; cd d; pwd yields a path ending in d.
func TestMkdirCdPwd(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"d", "with-dash", "nested/deeper/leaf", "ünï"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout := c.MustRun("mkdir "+name, "cd "+name, "pwd")

			want := c.Path(name)

			cli.AssertContains(t, stdout, "Created directory: "+want+"\n")
			cli.AssertContains(t, stdout, "Changed to: "+want+"\n")

			if !strings.Contains(stdout, "> "+want+"\n") {
				t.Fatalf("pwd should print %q\nstdout:\n%s", want, stdout)
			}

			if !strings.HasSuffix(want, name) {
				t.Fatalf("pwd %q should end in %q", want, name)
			}
		})
	}
}

// cd nonexistent reports an error and leaves the directory unchanged.
func TestCd_Nonexistent_KeepsDirectory(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, _ := c.Run("cd nowhere", "pwd")

	cli.AssertContains(t, stderr, "Error: stat "+c.Path("nowhere")+": no such file or directory")
	cli.AssertContains(t, stdout, "> "+c.Dir+"\n")
	cli.AssertNotContains(t, stdout, "Changed to:")
}

func TestCd_File_IsRefused(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("plain.txt", "x")

	stdout, stderr, _ := c.Run("cd plain.txt", "pwd")

	cli.AssertContains(t, stderr, "Error: not a directory: "+c.Path("plain.txt"))
	cli.AssertContains(t, stdout, "> "+c.Dir+"\n")
}

func TestCd_RelativeAndAbsolute(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	other := t.TempDir()

	stdout := c.MustRun("mkdir a/b", "cd a/b", "cd ..", "pwd", "cd "+other, "pwd", "touch here.txt")

	cli.AssertContains(t, stdout, "> "+c.Path("a")+"\n")
	cli.AssertContains(t, stdout, "> "+other+"\n")

	// Relative paths follow the session directory, not the process one.
	if _, err := os.Stat(filepath.Join(other, "here.txt")); err != nil {
		t.Fatalf("here.txt should be created in %s: %v", other, err)
	}
}

func TestRmdir_Recursive(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("tree/a/b/file.txt", "content")

	stdout := c.MustRun("rmdir tree", "ls")

	cli.AssertContains(t, stdout, "Removed directory: "+c.Path("tree"))
	cli.AssertContains(t, stdout, "(empty)")

	if _, err := os.Stat(c.Path("tree")); !os.IsNotExist(err) {
		t.Fatalf("tree should be gone, stat err=%v", err)
	}
}

func TestRmdir_Failures(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f.txt", "x")

	_, stderr, _ := c.Run("rmdir missing", "rmdir f.txt")

	cli.AssertContains(t, stderr, "Error: stat "+c.Path("missing")+": no such file or directory")
	cli.AssertContains(t, stderr, "Error: not a directory: "+c.Path("f.txt"))
}

// touch f then stats f reports a 0 byte file.
func TestTouchStats(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("touch f", "stats f")

	cli.AssertContains(t, stdout, "Created file: "+c.Path("f"))
	cli.AssertContains(t, stdout, "Stats:\n  isFile: true\n  isDirectory: false\n  size: 0 bytes\n  modified: ")
}

func TestTouch_TruncatesExisting(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f", "some content")

	c.MustRun("touch f")

	if got, want := c.ReadFile("f"), ""; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func TestStats_Directory_And_TimeFormat(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("cfg.json", `{"time_format": "2006"}`)
	c.Env["FSX_CONFIG"] = c.Path("cfg.json")

	if err := os.Mkdir(c.Path("d"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	info, err := os.Stat(c.Path("d"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	stdout := c.MustRun("stats d")

	cli.AssertContains(t, stdout, "  isFile: false\n  isDirectory: true\n")
	cli.AssertContains(t, stdout, "  modified: "+info.ModTime().Format("2006")+"\n")
}

func TestStats_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("stats ghost")

	cli.AssertContains(t, stderr, "no such file or directory")
}

// rm on a nonexistent file reports an error and keeps the directory.
func TestRm_Nonexistent(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, _ := c.Run("rm ghost.txt", "pwd")

	cli.AssertContains(t, stderr, "Error: stat "+c.Path("ghost.txt")+": no such file or directory")
	cli.AssertContains(t, stdout, "> "+c.Dir+"\n")
}

func TestRm_File_And_Directory(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f.txt", "x")

	if err := os.Mkdir(c.Path("d"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	stdout, stderr, _ := c.Run("rm f.txt", "rm d")

	cli.AssertContains(t, stdout, "Deleted file: "+c.Path("f.txt"))
	cli.AssertContains(t, stderr, "Error: is a directory: "+c.Path("d"))

	if _, err := os.Stat(c.Path("d")); err != nil {
		t.Fatalf("directory should survive rm: %v", err)
	}
}

// write f + s, then read f returns s.
func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"hello", "two  spaces inside", "  leading and trailing  ", "ünïcödé ✓"} {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout := c.MustRun("write f.txt", text, "read f.txt")

			cli.AssertContains(t, stdout, "Enter text to write: ")
			cli.AssertContains(t, stdout, "Wrote to file: "+c.Path("f.txt"))
			cli.AssertContains(t, stdout, "Content of f.txt:\n"+text+"\n")

			if got, want := c.ReadFile("f.txt"), text; got != want {
				t.Fatalf("file=%q, want=%q", got, want)
			}
		})
	}
}

func TestWrite_Overwrites(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f.txt", "a much longer previous content\nwith lines\n")

	c.MustRun("write f.txt", "short")

	if got, want := c.ReadFile("f.txt"), "short"; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestWrite_ThroughHardLink(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("real.txt", "old")

	if err := os.Link(c.Path("real.txt"), c.Path("hard.txt")); err != nil {
		t.Fatalf("link: %v", err)
	}

	c.MustRun("write hard.txt", "new")

	for _, name := range []string{"real.txt", "hard.txt"} {
		if got, want := c.ReadFile(name), "new"; got != want {
			t.Errorf("%s=%q, want=%q", name, got, want)
		}
	}
}

func TestWrite_EmptyLine(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f.txt", "old")

	c.MustRun("write f.txt", "")

	if got, want := c.ReadFile("f.txt"), ""; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestWrite_InputEnds_LeavesFile(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f.txt", "keep")

	stdout, stderr, exitCode := c.Run("write f.txt")

	if got, want := exitCode, 0; got != want {
		t.Errorf("exitCode=%d, want=%d", got, want)
	}

	cli.AssertContains(t, stderr, "Error: "+cli.ErrInputAborted.Error())
	cli.AssertContains(t, stdout, "Goodbye!")

	if got, want := c.ReadFile("f.txt"), "keep"; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestWrite_MissingParent(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, _ := c.Run("write nodir/f.txt", "text", "pwd")

	cli.AssertContains(t, stderr, "Error: ")
	cli.AssertNotContains(t, stdout, "Wrote to file")
	cli.AssertContains(t, stdout, "> "+c.Dir+"\n")
}

// append f + s over s0 yields s0 + s + "\n".
func TestAppend(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("log.txt", "s0")

	stdout := c.MustRun("append log.txt", "s", "read log.txt")

	cli.AssertContains(t, stdout, "Enter text to append: ")
	cli.AssertContains(t, stdout, "Appended to file: "+c.Path("log.txt"))
	cli.AssertContains(t, stdout, "Content of log.txt:\ns0s\n")

	if got, want := c.ReadFile("log.txt"), "s0s\n"; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestAppend_CreatesFile_And_Accumulates(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("append new.txt", "one", "append new.txt", "two")

	if got, want := c.ReadFile("new.txt"), "one\ntwo\n"; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestAppend_IOError(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("bad.txt", "old")

	chaos := fs.NewChaos(fs.NewReal())
	chaos.SetPathState(c.Path("bad.txt"), fs.PathIOError)
	c.FS = chaos

	stdout, stderr, _ := c.Run("append bad.txt", "new", "pwd")

	cli.AssertContains(t, stderr, "input/output error")
	cli.AssertNotContains(t, stdout, "Appended to file")
	cli.AssertContains(t, stdout, "> "+c.Dir+"\n")

	if got, want := c.ReadFile("bad.txt"), "old"; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestRead_Binary_IsRefused(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("blob.bin", "\x00\x01\x02")

	stdout, stderr, _ := c.Run("read blob.bin")

	cli.AssertContains(t, stderr, "Error: not valid text: "+c.Path("blob.bin"))
	cli.AssertNotContains(t, stdout, "Content of")
}

func TestRead_TrailingNewline_NotDoubled(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("f.txt", "line1\nline2\n")

	stdout := c.MustRun("read f.txt")

	cli.AssertContains(t, stdout, "Content of f.txt:\nline1\nline2\n")
	cli.AssertNotContains(t, stdout, "line2\n\n")
}

// rename a b → read b succeeds, read a fails with not-found.
func TestRename(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("a", "payload")

	stdout, stderr, _ := c.Run("rename a b", "read b", "read a")

	cli.AssertContains(t, stdout, "Renamed a to b")
	cli.AssertContains(t, stdout, "Content of b:\npayload\n")
	cli.AssertContains(t, stderr, "Error: open "+c.Path("a")+": no such file or directory")
}

func TestRename_IntoSubdirectory(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("a.txt", "x")
	c.MustRun("mkdir sub", "rename a.txt sub/a.txt")

	if got, want := c.ReadFile("sub/a.txt"), "x"; got != want {
		t.Fatalf("file=%q, want=%q", got, want)
	}
}

func TestRename_Failures(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("a", "A")
	c.WriteFile("b", "B")

	_, stderr, _ := c.Run("rename a b", "rename ghost c")

	cli.AssertContains(t, stderr, "Error: target already exists: "+c.Path("b"))
	cli.AssertContains(t, stderr, "Error: stat "+c.Path("ghost")+": no such file or directory")

	if got, want := c.ReadFile("b"), "B"; got != want {
		t.Fatalf("b=%q, want=%q", got, want)
	}
}
