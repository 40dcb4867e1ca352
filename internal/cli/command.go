package cli

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a shell command with unified help generation.
type Command struct {
	// Usage is the freeform usage string, starting with the command name.
	// Examples: "cd <dir>", "rename <old> <new>", "ls"
	Usage string

	// Aliases are extra verbs that dispatch to this command.
	Aliases []string

	// Short is a one-line description for the help listing.
	Short string

	// Long is the full description shown by "<cmd> --help".
	// If empty, Short is used instead.
	Long string

	// Args is the number of required positional arguments. Extra
	// arguments are ignored.
	Args int

	// ArgsErr is reported when fewer than Args arguments are given.
	ArgsErr error

	// Exec runs the command with the raw arguments.
	Exec func(sh *Shell, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the help listing.
func (c *Command) HelpLine() string {
	usage := c.Usage
	if len(c.Aliases) > 0 {
		name, rest, _ := strings.Cut(c.Usage, " ")
		usage = strings.TrimSpace(name + "/" + strings.Join(c.Aliases, "/") + " " + rest)
	}

	return fmt.Sprintf("  %-22s - %s", usage, c.Short)
}

// PrintHelp prints the full help output for "<cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage:", c.Usage)

	if len(c.Aliases) > 0 {
		o.Println("Aliases:", strings.Join(c.Aliases, ", "))
	}

	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)
}

// Run checks for a help request and the argument count, then executes the
// command. Every failure is reported through sh's IO; nothing is returned
// because no error outlives a single command.
//
// Arguments are plain names: anything other than a lone -h/--help is passed
// to Exec unchanged, so "touch -x" creates a file named "-x".
func (c *Command) Run(sh *Shell, args []string) {
	if wantsHelp(c.Name(), args) {
		c.PrintHelp(sh.io)
		return
	}

	if len(args) < c.Args {
		sh.io.Error(c.ArgsErr)
		return
	}

	if err := c.Exec(sh, args); err != nil {
		sh.io.Error(err)
	}
}

// wantsHelp reports whether args is exactly one help flag.
func wantsHelp(name string, args []string) bool {
	if len(args) != 1 {
		return false
	}

	// A fresh FlagSet per invocation: pflag keeps parsed state.
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	help := flags.BoolP("help", "h", false, "show help")

	if err := flags.Parse(args); err != nil {
		return false
	}

	return *help && flags.NArg() == 0
}
