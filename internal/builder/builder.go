// Package builder turns a project's manifest and materialized dependency tree
// into a single compiler invocation, runs it, and optionally runs the result.
package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dreamcpp/internal/logger"
	"dreamcpp/internal/project"
	"dreamcpp/internal/shell"

	"github.com/rotisserie/eris"
)

// ErrNoSources is returned when src/ holds no compilable file.
var ErrNoSources = eris.New("no source files")

// sourceExtensions are the file types passed to the compiler.
var sourceExtensions = map[string]bool{
	".cpp": true,
	".cc":  true,
	".cxx": true,
	".c++": true,
	".c":   true,
}

// Invocation is a fully assembled command, run from Dir.
type Invocation struct {
	Dir     string
	Program string
	Args    []string
}

// String renders the invocation as a shell command line.
func (inv Invocation) String() string {
	return shell.Format(inv.Program, inv.Args...)
}

// CompileError is a compiler run that exited non-zero.
type CompileError struct {
	ExitCode int
	Output   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiler exited with status %d\n%s", e.ExitCode, strings.TrimRight(e.Output, "\n"))
}

// Assemble builds the compiler invocation for p. Paths are relative to the
// project root, which is the working directory of the invocation:
//
//	<compiler> <sources> -o build/<name> -std=<standard> -I<include>... -Ibuild/includes -Lbuild/lib -l<system>...
func Assemble(p *project.Project) (Invocation, error) {
	if _, err := os.Stat(p.ManifestPath); err != nil {
		return Invocation{}, eris.Wrapf(project.ErrNotProject, "no manifest at %s", p.ManifestPath)
	}
	if info, err := os.Stat(p.SrcDir()); err != nil || !info.IsDir() {
		return Invocation{}, eris.Errorf("no src directory found in %s", p.Root)
	}

	sources, err := listSources(p)
	if err != nil {
		return Invocation{}, err
	}

	m := p.Manifest
	args := append([]string{}, sources...)
	args = append(args, "-o", p.Rel(p.BinaryPath()))
	args = append(args, "-std="+m.Standard)
	for _, inc := range m.Includes {
		args = append(args, "-I"+inc)
	}
	args = append(args, "-I"+p.Rel(p.IncludesDir()))
	args = append(args, "-L"+p.Rel(p.LibDir()))
	for _, lib := range m.SystemLibraries() {
		args = append(args, "-l"+lib)
	}

	return Invocation{Dir: p.Root, Program: m.PreferredCompiler, Args: args}, nil
}

// listSources returns the compilable files directly under src/, in lexical order.
func listSources(p *project.Project) ([]string, error) {
	entries, err := os.ReadDir(p.SrcDir())
	if err != nil {
		return nil, eris.Wrapf(err, "failed to list %s", p.SrcDir())
	}

	var sources []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if sourceExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			sources = append(sources, filepath.Join(p.Rel(p.SrcDir()), e.Name()))
		}
	}
	if len(sources) == 0 {
		return nil, eris.Wrapf(ErrNoSources, "in %s", p.SrcDir())
	}
	return sources, nil
}

// Orchestrator runs builds through a shell.Runner.
type Orchestrator struct {
	Runner shell.Runner
}

// Build compiles the project. A non-zero compiler exit is returned as *CompileError.
func (o *Orchestrator) Build(p *project.Project) (Invocation, error) {
	logger.Info("[INFO] Building this project...\n")

	inv, err := Assemble(p)
	if err != nil {
		return Invocation{}, err
	}
	if err := os.MkdirAll(p.BuildDir(), 0755); err != nil {
		return inv, eris.Wrapf(err, "failed to create %s", p.BuildDir())
	}

	logger.Info("[INFO] Running: %s\n", inv)
	res, err := o.Runner.Capture(inv.Dir, inv.Program, inv.Args...)
	if err != nil {
		return inv, err
	}
	if res.ExitCode != 0 {
		return inv, &CompileError{ExitCode: res.ExitCode, Output: res.Output}
	}
	if out := strings.TrimSpace(res.Output); out != "" {
		logger.Debug("[DEBUG] Compiler output:\n%s\n", out)
	}

	logger.Info("[INFO] Build successful!\n")
	return inv, nil
}

// Run builds the project unconditionally and then executes the produced
// binary with its output streamed to the terminal.
func (o *Orchestrator) Run(p *project.Project) error {
	if _, err := o.Build(p); err != nil {
		return err
	}

	binary := "./" + filepath.ToSlash(p.Rel(p.BinaryPath()))
	logger.Info("[INFO] Running: %s\n", shell.Format(binary))
	code, err := o.Runner.Stream(p.Root, binary)
	if err != nil {
		return err
	}
	if code != 0 {
		return eris.Errorf("%s exited with status %d", binary, code)
	}
	return nil
}
