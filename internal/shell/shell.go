// Package shell runs external programs: git, the compiler and the built binary.
package shell

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"dreamcpp/internal/logger"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/syntax"
)

// Result is the captured outcome of a finished process.
type Result struct {
	Output   string // combined stdout and stderr
	ExitCode int
}

// Runner executes a program in a working directory.
// A non-zero exit is reported through the exit code, not the error; the error is
// reserved for processes that could not be started at all.
type Runner interface {
	Capture(dir, name string, args ...string) (Result, error)
	Stream(dir, name string, args ...string) (int, error)
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

// Capture runs the program to completion and returns its combined output.
func (ExecRunner) Capture(dir, name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	logger.Debug("[DEBUG] Running command: %s\n", Format(name, args...))

	output, err := cmd.CombinedOutput()
	code, err := exitCode(err)
	if err != nil {
		return Result{Output: string(output)}, eris.Wrapf(err, "failed to start %s", name)
	}
	return Result{Output: string(output), ExitCode: code}, nil
}

// Stream runs the program attached to the current stdin, stdout and stderr.
func (ExecRunner) Stream(dir, name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	logger.Debug("[DEBUG] Running command: %s\n", Format(name, args...))

	code, err := exitCode(cmd.Run())
	if err != nil {
		return -1, eris.Wrapf(err, "failed to start %s", name)
	}
	return code, nil
}

// exitCode separates "the program ran and exited non-zero" from "the program never ran".
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// Format renders a command line the way a user would type it into bash.
func Format(name string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	for _, w := range append([]string{name}, args...) {
		quoted, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			quoted = strconv.Quote(w)
		}
		words = append(words, quoted)
	}
	return strings.Join(words, " ")
}
