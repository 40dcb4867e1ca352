package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/calvinalkan/fsx/internal/explorer"
	"github.com/calvinalkan/fsx/internal/fs"
)

const welcome = `Welcome to File System Explorer! Type "help" for commands.`

// Run is the main entry point. It runs the shell until "exit" or end of
// input and returns the process exit code.
//
// workDir must be absolute; it is the initial current directory unless the
// user config names a start_dir. Program arguments are not interpreted.
func Run(in io.Reader, out io.Writer, errOut io.Writer, workDir string, env map[string]string) int {
	return run(in, out, errOut, workDir, env, fs.NewReal())
}

func run(in io.Reader, out io.Writer, errOut io.Writer, workDir string, env map[string]string, fsys fs.FS) int {
	o := NewIO(out, errOut)

	cfg, err := explorer.LoadConfig(env)
	if err != nil {
		o.Warn(err.Error(), "using default settings")
	}

	o.SetColor(cfg.Color)

	session, err := explorer.NewSession(fsys, workDir)
	if err != nil {
		o.Error(err)

		return 1
	}

	if cfg.StartDir != "" {
		if _, err := session.Chdir(cfg.StartDir); err != nil {
			o.Warn(fmt.Sprintf("cannot start in %s: %v", cfg.StartDir, err), "starting in "+workDir)
		}
	}

	sh := newShell(session, o, cfg)

	var reader LineReader
	if isInteractive(in, out, env) {
		reader = newTerminalReader(fsys, cfg.HistoryFile, sh.completeWord)
	} else {
		reader = newBufferedReader(in, out)
	}

	sh.in = reader

	loopErr := sh.loop()

	if err := reader.Close(); err != nil {
		o.Warn("saving history: "+err.Error(), "history not saved")
	}

	if loopErr != nil {
		o.Error(fmt.Errorf("reading input: %w", loopErr))

		return 1
	}

	return 0
}

// Shell is the command loop and the state it owns.
type Shell struct {
	session  *explorer.Session
	io       *IO
	in       LineReader
	cfg      explorer.Config
	commands []*Command
	byName   map[string]*Command
	done     bool
}

func newShell(session *explorer.Session, o *IO, cfg explorer.Config) *Shell {
	sh := &Shell{
		session:  session,
		io:       o,
		cfg:      cfg,
		commands: commands(),
		byName:   make(map[string]*Command),
	}

	for _, c := range sh.commands {
		sh.byName[c.Name()] = c
		for _, alias := range c.Aliases {
			sh.byName[alias] = c
		}
	}

	return sh
}

func (sh *Shell) prompt() string {
	return sh.session.Name() + " > "
}

// loop reads and dispatches lines until exit or end of input. It returns an
// error only when reading input fails.
func (sh *Shell) loop() error {
	sh.io.Println(welcome)

	for !sh.done {
		line, err := sh.in.Prompt(sh.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
				sh.io.Println()
				sh.io.Println("Goodbye!")

				return nil
			}

			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		sh.in.AppendHistory(strings.TrimSpace(line))
		sh.dispatch(fields)
	}

	return nil
}

// dispatch runs the command named by the first field. Verbs are
// case-insensitive; arguments are passed through unchanged.
func (sh *Shell) dispatch(fields []string) {
	verb := strings.ToLower(fields[0])

	cmd, ok := sh.lookup(verb)
	if !ok {
		sh.unknownCommand(fields[0])

		return
	}

	cmd.Run(sh, fields[1:])
}

// unknownCommand prints the unknown-verb notice on stdout.
func (sh *Shell) unknownCommand(verb string) {
	sh.io.Printf("Unknown command: %s. Type \"help\" for options.\n", verb)
}

func (sh *Shell) lookup(verb string) (*Command, bool) {
	cmd, ok := sh.byName[strings.ToLower(verb)]

	return cmd, ok
}

// promptText reads one line of free text for write and append.
func (sh *Shell) promptText(prompt string) (string, error) {
	text, err := sh.in.Prompt(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
			return "", ErrInputAborted
		}

		return "", err
	}

	return text, nil
}

func (sh *Shell) printHelp() {
	sh.io.Println()
	sh.io.Println("File System Explorer Commands:")

	for _, c := range sh.commands {
		sh.io.Println(c.HelpLine())
	}

	sh.io.Println()
	sh.io.Println(`"<command> -h" or "<command> --help" shows help for one command.`)
}

// completeWord implements liner.WordCompleter: verbs for the first word,
// entries of the current directory for the others.
func (sh *Shell) completeWord(line string, pos int) (string, []string, string) {
	runes := []rune(line)
	pos = min(max(pos, 0), len(runes))

	head := string(runes[:pos])
	tail := string(runes[pos:])

	start := strings.LastIndexAny(head, " \t") + 1
	prefix := head[start:]

	var candidates []string

	if strings.TrimSpace(head[:start]) == "" {
		for name := range sh.byName {
			candidates = append(candidates, name)
		}
	} else {
		entries, err := sh.session.List()
		if err != nil {
			return head, nil, tail
		}

		for _, e := range entries {
			candidates = append(candidates, e.Name)
		}
	}

	var matches []string

	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			matches = append(matches, c)
		}
	}

	slices.Sort(matches)

	return head[:start], matches, tail
}
