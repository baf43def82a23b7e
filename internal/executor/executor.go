// Package executor handles user confirmation and child process execution.
// Confirm uses injectable io.Reader/io.Writer for testability.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/term"
)

// NoExitCode is reported when a process never started or its status is unknown.
const NoExitCode = -1

// Confirm prompts the user for yes/no confirmation.
// defaultYes controls what happens when the user presses Enter without input.
// in and out are injectable for testing.
func Confirm(prompt string, defaultYes bool, in io.Reader, out io.Writer) bool {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	_, _ = fmt.Fprintf(out, "%s %s: ", prompt, hint)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	input := strings.TrimSpace(strings.ToLower(scanner.Text()))

	switch input {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return false
	}
}

var (
	colorEnvOnce sync.Once
	colorEnvVars []string
)

// colorForceEnvVars are appended to the child environment when stdout is a TTY.
var colorForceEnvVars = []string{
	"FORCE_COLOR=1",
	"CLICOLOR_FORCE=1",
	"COLORTERM=truecolor",
}

func initColorEnv() {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return
	}
	if isTerminal(os.Stdout) {
		colorEnvVars = colorForceEnvVars
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Runner starts child processes with the given stdio.
// Nil stdio fields connect to the null device, as with exec.Cmd.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Env is the child environment. Nil means inherit os.Environ().
	Env []string
}

// New returns a Runner that inherits the current process's stdio and
// environment, forcing color output when stdout is a terminal.
func New() *Runner {
	colorEnvOnce.Do(initColorEnv)
	var env []string
	if len(colorEnvVars) > 0 {
		env = append(os.Environ(), colorEnvVars...)
	}
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Env:    env,
	}
}

// Run executes name with args in dir and waits for it to exit.
// Non-zero exit codes are returned as data, not as Go errors. An error is
// returned only when the process could not be started or waited on, in which
// case the exit code is NoExitCode.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = r.Env
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	runErr := cmd.Run()
	if runErr == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return NoExitCode, fmt.Errorf("executing %s: %w", name, runErr)
}
