package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/fsx/internal/fs"
)

// ErrAborted is returned by [LineReader.Prompt] when the user cancels the
// prompt (Ctrl-C on a terminal).
var ErrAborted = errors.New("prompt aborted")

// LineReader reads one line of user input per prompt.
//
// Prompt returns the line without its line terminator. At end of input it
// returns [io.EOF].
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// bufferedReader reads lines from a plain stream, writing the prompt to out.
// Used when stdin is not a terminal and in tests.
type bufferedReader struct {
	r   *bufio.Reader
	out io.Writer
}

func newBufferedReader(in io.Reader, out io.Writer) *bufferedReader {
	if in == nil {
		in = strings.NewReader("")
	}

	return &bufferedReader{r: bufio.NewReader(in), out: out}
}

func (b *bufferedReader) Prompt(prompt string) (string, error) {
	_, _ = io.WriteString(b.out, prompt)

	line, err := b.r.ReadString('\n')
	if err != nil {
		// Last line without a trailing newline is still a line.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (b *bufferedReader) AppendHistory(string) {}

func (b *bufferedReader) Close() error { return nil }

// terminalReader reads lines with liner: line editing, history and tab
// completion. History lives in memory unless historyFile is set.
type terminalReader struct {
	state       *liner.State
	fs          fs.FS
	historyFile string
}

func newTerminalReader(fsys fs.FS, historyFile string, complete liner.WordCompleter) *terminalReader {
	r := &terminalReader{
		state:       liner.NewLiner(),
		fs:          fsys,
		historyFile: historyFile,
	}

	r.state.SetCtrlCAborts(true)
	r.state.SetTabCompletionStyle(liner.TabPrints)
	r.state.SetWordCompleter(complete)

	if historyFile != "" {
		if f, err := fsys.Open(historyFile); err == nil {
			_, _ = r.state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return r
}

func (r *terminalReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}

	return line, err
}

func (r *terminalReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close restores the terminal and saves history if a history file is set.
func (r *terminalReader) Close() error {
	var saveErr error

	if r.historyFile != "" {
		var buf bytes.Buffer
		if _, err := r.state.WriteHistory(&buf); err == nil {
			saveErr = r.fs.WriteFileAtomic(r.historyFile, buf.Bytes(), historyPerms)
		}
	}

	return errors.Join(saveErr, r.state.Close())
}

const historyPerms os.FileMode = 0o600
