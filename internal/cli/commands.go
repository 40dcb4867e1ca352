package cli

import (
	"errors"
	"strings"
)

var (
	errDirRequired      = errors.New("please specify a directory")
	errDirNameRequired  = errors.New("please specify a directory name")
	errFileNameRequired = errors.New("please specify a file name")
	errNamesRequired    = errors.New("please specify old and new names")
	errEntryRequired    = errors.New("please specify a file or directory name")

	// ErrInputAborted is reported when the text prompt of write or append
	// is cancelled or input ends. The file is left untouched.
	ErrInputAborted = errors.New("no text entered, nothing written")
)

// commands returns the dispatch table in help order.
func commands() []*Command {
	return []*Command{
		{
			Usage:   "ls",
			Aliases: []string{"dir"},
			Short:   "List contents of current directory",
			Exec:    execList,
		},
		{
			Usage:   "cd <dir>",
			Short:   "Change to specified directory",
			Long:    "Change the current directory. The target must exist and be a directory.\nRelative paths and .. are resolved against the current directory.",
			Args:    1,
			ArgsErr: errDirRequired,
			Exec:    execChdir,
		},
		{
			Usage: "pwd",
			Short: "Show current directory path",
			Exec:  execPwd,
		},
		{
			Usage:   "mkdir <name>",
			Short:   "Create a new directory",
			Long:    "Create a directory, including any missing parents.",
			Args:    1,
			ArgsErr: errDirNameRequired,
			Exec:    execMakeDir,
		},
		{
			Usage:   "rmdir <name>",
			Short:   "Remove a directory",
			Long:    "Remove a directory and everything in it. There is no confirmation.",
			Args:    1,
			ArgsErr: errDirNameRequired,
			Exec:    execRemoveDir,
		},
		{
			Usage:   "touch <name>",
			Short:   "Create a new empty file",
			Long:    "Create an empty file. An existing file is truncated.",
			Args:    1,
			ArgsErr: errFileNameRequired,
			Exec:    execTouch,
		},
		{
			Usage:   "rm <name>",
			Short:   "Delete a file",
			Long:    "Delete a file. Use rmdir for directories.",
			Args:    1,
			ArgsErr: errFileNameRequired,
			Exec:    execRemoveFile,
		},
		{
			Usage:   "read <name>",
			Short:   "Read file contents",
			Long:    "Print a file's contents. Binary or non UTF-8 files are refused.",
			Args:    1,
			ArgsErr: errFileNameRequired,
			Exec:    execRead,
		},
		{
			Usage:   "write <name>",
			Short:   "Write text to a file",
			Long:    "Prompt for one line of text and replace the file's contents with it.\nNo newline is added.",
			Args:    1,
			ArgsErr: errFileNameRequired,
			Exec:    execWrite,
		},
		{
			Usage:   "append <name>",
			Short:   "Append text to a file",
			Long:    "Prompt for one line of text and append it, plus a newline, to the file.",
			Args:    1,
			ArgsErr: errFileNameRequired,
			Exec:    execAppend,
		},
		{
			Usage:   "rename <old> <new>",
			Short:   "Rename a file or directory",
			Long:    "Rename or move an entry. Both names are resolved against the current\ndirectory. An existing target is never replaced.",
			Args:    2,
			ArgsErr: errNamesRequired,
			Exec:    execRename,
		},
		{
			Usage:   "stats <name>",
			Short:   "Show file/directory stats",
			Args:    1,
			ArgsErr: errEntryRequired,
			Exec:    execStats,
		},
		{
			Usage: "help [command]",
			Short: "Show this help menu",
			Exec:  execHelp,
		},
		{
			Usage: "exit",
			Short: "Exit the explorer",
			Exec:  execExit,
		},
	}
}

func execList(sh *Shell, _ []string) error {
	entries, err := sh.session.List()
	if err != nil {
		return err
	}

	sh.io.Println("Directory contents:")

	if len(entries) == 0 {
		sh.io.Println("  (empty)")
	}

	for _, e := range entries {
		name := e.Name
		if e.IsDir {
			name = sh.io.DirName(name)
		}

		sh.io.Println(" ", name)
	}

	return nil
}

func execChdir(sh *Shell, args []string) error {
	dir, err := sh.session.Chdir(args[0])
	if err != nil {
		return err
	}

	sh.io.Println("Changed to:", dir)

	return nil
}

func execPwd(sh *Shell, _ []string) error {
	sh.io.Println(sh.session.Dir())

	return nil
}

func execMakeDir(sh *Shell, args []string) error {
	path, err := sh.session.MakeDir(args[0])
	if err != nil {
		return err
	}

	sh.io.Println("Created directory:", path)

	return nil
}

func execRemoveDir(sh *Shell, args []string) error {
	path, err := sh.session.RemoveDir(args[0])
	if err != nil {
		return err
	}

	sh.io.Println("Removed directory:", path)

	return nil
}

func execTouch(sh *Shell, args []string) error {
	path, err := sh.session.Touch(args[0])
	if err != nil {
		return err
	}

	sh.io.Println("Created file:", path)

	return nil
}

func execRemoveFile(sh *Shell, args []string) error {
	path, err := sh.session.RemoveFile(args[0])
	if err != nil {
		return err
	}

	sh.io.Println("Deleted file:", path)

	return nil
}

func execRead(sh *Shell, args []string) error {
	content, err := sh.session.ReadText(args[0])
	if err != nil {
		return err
	}

	sh.io.Printf("Content of %s:\n%s", args[0], content)

	if !strings.HasSuffix(content, "\n") {
		sh.io.Println()
	}

	return nil
}

func execWrite(sh *Shell, args []string) error {
	text, err := sh.promptText("Enter text to write: ")
	if err != nil {
		return err
	}

	path, err := sh.session.WriteText(args[0], text)
	if err != nil {
		return err
	}

	sh.io.Println("Wrote to file:", path)

	return nil
}

func execAppend(sh *Shell, args []string) error {
	text, err := sh.promptText("Enter text to append: ")
	if err != nil {
		return err
	}

	path, err := sh.session.AppendLine(args[0], text)
	if err != nil {
		return err
	}

	sh.io.Println("Appended to file:", path)

	return nil
}

func execRename(sh *Shell, args []string) error {
	if _, _, err := sh.session.Rename(args[0], args[1]); err != nil {
		return err
	}

	sh.io.Println("Renamed", args[0], "to", args[1])

	return nil
}

func execStats(sh *Shell, args []string) error {
	st, err := sh.session.Stat(args[0])
	if err != nil {
		return err
	}

	modified := st.Modified.String()
	if sh.cfg.TimeFormat != "" {
		modified = st.Modified.Format(sh.cfg.TimeFormat)
	}

	sh.io.Println("Stats:")
	sh.io.Println("  isFile:", st.IsFile)
	sh.io.Println("  isDirectory:", st.IsDirectory)
	sh.io.Printf("  size: %d bytes\n", st.Size)
	sh.io.Println("  modified:", modified)

	return nil
}

func execHelp(sh *Shell, args []string) error {
	if len(args) > 0 {
		cmd, ok := sh.lookup(args[0])
		if !ok {
			sh.unknownCommand(args[0])

			return nil
		}

		cmd.PrintHelp(sh.io)

		return nil
	}

	sh.printHelp()

	return nil
}

func execExit(sh *Shell, _ []string) error {
	sh.io.Println("Goodbye!")
	sh.done = true

	return nil
}
