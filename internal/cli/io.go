package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/calvinalkan/fsx/internal/explorer"
)

// IO handles shell output. Results go to out, errors and warnings to errOut.
//
// Styling is rendered per writer, so a writer that is not a colour terminal
// (a pipe, a file, a test buffer) always receives plain text.
type IO struct {
	out    io.Writer
	errOut io.Writer

	dirStyle   lipgloss.Style
	errorStyle lipgloss.Style
	warnStyle  lipgloss.Style
}

// NewIO creates a new IO instance with automatic colour detection.
func NewIO(out, errOut io.Writer) *IO {
	o := &IO{out: out, errOut: errOut}
	o.SetColor(explorer.ColorAuto)

	return o
}

// SetColor applies one of the explorer.Color* modes.
func (o *IO) SetColor(mode string) {
	outR := lipgloss.NewRenderer(o.out)
	errR := lipgloss.NewRenderer(o.errOut)

	switch mode {
	case explorer.ColorNever:
		outR.SetColorProfile(termenv.Ascii)
		errR.SetColorProfile(termenv.Ascii)
	case explorer.ColorAlways:
		outR.SetColorProfile(termenv.ANSI256)
		errR.SetColorProfile(termenv.ANSI256)
	}

	o.dirStyle = outR.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	o.errorStyle = errR.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	o.warnStyle = errR.NewStyle().Foreground(lipgloss.Color("214"))
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Error reports err on stderr as "Error: <message>".
func (o *IO) Error(err error) {
	_, _ = fmt.Fprintln(o.errOut, o.errorStyle.Render("Error:"), err.Error())
}

// Warn reports a non-fatal problem and what is done about it.
func (o *IO) Warn(issue string, action string) {
	_, _ = fmt.Fprintf(o.errOut, "%s %s: %s\n", o.warnStyle.Render("warning:"), issue, action)
}

// DirName styles a directory name for listings.
func (o *IO) DirName(name string) string {
	return o.dirStyle.Render(name)
}
