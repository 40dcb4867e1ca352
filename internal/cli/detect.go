package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isInteractive reports whether the shell should use the line editor.
//
// Returns false if:
//   - FSX_NON_INTERACTIVE=1 is set
//   - in is not the process stdin, or stdin is not a terminal
//   - out is not a terminal
//
// The line editor always talks to the process's terminal, so any other
// reader (a pipe, a test buffer) gets the buffered reader instead.
func isInteractive(in io.Reader, out io.Writer, env map[string]string) bool {
	if env["FSX_NON_INTERACTIVE"] == "1" {
		return false
	}

	inFile, ok := in.(*os.File)
	if !ok || inFile.Fd() != os.Stdin.Fd() || !term.IsTerminal(int(inFile.Fd())) {
		return false
	}

	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return false
	}

	return true
}
