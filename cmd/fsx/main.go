// Package main provides fsx, an interactive shell for exploring and editing
// the local filesystem.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/calvinalkan/fsx/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: cannot get working directory:", err)
		os.Exit(1)
	}

	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, workDir, env)

	os.Exit(exitCode)
}
